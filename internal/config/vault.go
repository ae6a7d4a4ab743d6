package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/vault/api"
)

// resolveVault fetches a credential from HashiCorp Vault.
// Reference format: mount/data/path#key
func resolveVault(ref string) (string, error) {
	path, key, found := strings.Cut(ref, "#")
	if !found || key == "" {
		return "", fmt.Errorf("invalid Vault reference %q: expected path#key", ref)
	}

	addr := os.Getenv("VAULT_ADDR")
	if addr == "" {
		return "", fmt.Errorf("VAULT_ADDR environment variable not set")
	}
	token := os.Getenv("VAULT_TOKEN")
	if token == "" {
		return "", fmt.Errorf("VAULT_TOKEN environment variable not set")
	}

	vcfg := api.DefaultConfig()
	vcfg.Address = addr

	client, err := api.NewClient(vcfg)
	if err != nil {
		return "", fmt.Errorf("creating Vault client: %w", err)
	}
	client.SetToken(token)
	if ns := os.Getenv("VAULT_NAMESPACE"); ns != "" {
		client.SetNamespace(ns)
	}

	secret, err := client.Logical().Read(path)
	if err != nil {
		return "", fmt.Errorf("reading Vault secret %s: %w", path, err)
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("no Vault secret at %s", path)
	}

	// KV v2 nests the payload under "data".
	data := secret.Data
	if inner, ok := data["data"].(map[string]interface{}); ok {
		data = inner
	}

	val, ok := data[key]
	if !ok {
		return "", fmt.Errorf("key %q not present in Vault secret %s", key, path)
	}
	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("Vault secret %s key %q is not a string", path, key)
	}

	return str, nil
}
