package narrative

import "github.com/micatools/mica/internal/dialect"

// Shared openers for the risk and recommendation sequences. Every dialect's
// curated list starts with these before its own entries.
var baseRisks = []string{
	"Data loss during migration.",
	"Potential downtime during cutover.",
	"Performance impact on the source system during extraction.",
	"Data type compatibility issues.",
	"Function and procedure syntax differences.",
}

var baseRecommendations = []string{
	"Create a comprehensive backup of source data before migration begins.",
	"Implement a dedicated testing environment for thorough migration validation.",
	"Document all custom functions, procedures, and complex business logic from the source.",
	"Plan for an adequate downtime window for the final cutover, or explore a phased migration.",
	"Develop and test a detailed rollback plan in case of critical issues.",
}

var commonBusinessValue = []string{
	"Enhanced scalability and performance: independently scale compute and storage for optimal performance with any data volume.",
	"Simplified data management: consolidate data, streamline administration, and improve data governance.",
	"Faster analytics and insights: accelerate data-driven decisions with high-performance SQL queries.",
	"Direct cost savings: lower total cost of ownership through pay-per-second compute and separate competitive storage pricing.",
}

func withBase(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	out = append(out, extra...)
	return out
}

func valueList(specific ...string) []string {
	return withBase(specific, commonBusinessValue...)
}

// Default returns the curated narrative tables shipped with the calculator.
func Default() Tables {
	return Tables{
		BusinessValue: map[dialect.Dialect][]string{
			dialect.Oracle: valueList(
				"Significant reduction in licensing costs: transition away from expensive proprietary Oracle licenses and complex audit processes.",
				"Move away from complex and costly Oracle-specific features like RAC towards a simpler, elastic architecture.",
				"Improved agility and faster time-to-market for new data initiatives in a cloud-native, CI/CD-friendly environment.",
			),
			dialect.SQLServer: valueList(
				"Eliminate SQL Server licensing costs and reduce dependency on the Microsoft-specific ecosystem.",
				"Transition from restrictive on-premises hardware to flexible cloud infrastructure, reducing capital expenditure.",
				"Gain access to broader data integration and analytics capabilities beyond the traditional SQL Server stack.",
			),
			dialect.PostgreSQL: valueList(
				"Achieve higher levels of scalability and concurrency than self-managed PostgreSQL instances typically support.",
				"Reduce the operational burden of managing, tuning, vacuuming, and upgrading PostgreSQL databases.",
				"Leverage built-in security and governance features such as dynamic data masking and row-level security.",
			),
			dialect.Teradata: valueList(
				"Modernize from a legacy Teradata appliance to a flexible cloud-native architecture, avoiding costly hardware refresh cycles.",
				"Significant cost savings by moving away from Teradata's hardware and software licensing model.",
				"Support diverse workloads beyond traditional BI: data engineering, data science, and ad-hoc analysis.",
			),
			dialect.Lakehouse: valueList(
				"Simplify data warehousing and BI workloads with an optimized SQL engine and an analyst-friendly interface.",
				"Reduce total cost of ownership by consolidating data lake and data warehouse capabilities where appropriate.",
				"Benefit from strong governance, security, and data sharing for structured and semi-structured data.",
			),
			dialect.Snowflake: valueList(
				"Consolidate multiple Snowflake accounts for better cost management and centralized governance.",
				"Optimize existing workloads by re-evaluating warehouse sizing, query performance, and clustering strategies.",
				"Adopt the latest platform features and best practices in the target account.",
			),
		},

		Risks: map[dialect.Dialect][]string{
			dialect.Oracle: withBase(baseRisks,
				"PL/SQL to Snowflake SQL conversion complexity.",
				"Oracle-specific features (e.g. AQ, Spatial) may have no direct equivalent.",
				"Sequence and identity column handling differences.",
			),
			dialect.SQLServer: withBase(baseRisks,
				"T-SQL to Snowflake SQL conversion complexity.",
				"SQL Server-specific features (e.g. linked servers, Service Broker) may have no direct equivalent.",
				"Identity column and sequence handling differences.",
			),
			dialect.PostgreSQL: withBase(baseRisks,
				"PostgreSQL-specific data types (e.g. PostGIS) may need complex conversion or workarounds.",
				"PL/pgSQL to Snowflake SQL or JavaScript UDF conversion.",
				"Extension and custom function compatibility and rewrite effort.",
			),
			dialect.Teradata: withBase(baseRisks,
				"BTEQ/TPT script conversion to SnowSQL, Python scripts, or ETL tools.",
				"Teradata-specific SQL extensions and utilities (FastLoad, MultiLoad) require redesign.",
				"Handling of Teradata-specific data types and indexing strategies such as PPI.",
			),
			dialect.Lakehouse: withBase(baseRisks,
				"Converting Delta Lake-specific features (time travel, MERGE on Delta) to Snowflake equivalents.",
				"Rewriting Spark SQL, Python, and Scala UDFs and jobs for Snowflake.",
				"Managing data consistency and schema evolution differences between Delta Lake and Snowflake tables.",
			),
			dialect.Snowflake: baseRisks,
		},

		Recommendations: map[dialect.Dialect][]string{
			dialect.Oracle: withBase(baseRecommendations,
				"Utilize schema conversion tools and thoroughly review Oracle-specific features for compatibility.",
				"Focus on a PL/SQL to Snowflake SQL/JavaScript UDF conversion strategy and testing.",
				"Address sequence generation and identity column behavior early in the planning phase.",
			),
			dialect.SQLServer: withBase(baseRecommendations,
				"Analyze T-SQL code for constructs that need rewriting for Snowflake SQL.",
				"Plan for handling SQL Server Agent jobs and SSIS packages, potentially migrating to Snowflake tasks or other ETL tools.",
				"Document and test identity column and sequence migration strategies.",
			),
			dialect.PostgreSQL: withBase(baseRecommendations,
				"Carefully map PostgreSQL data types and extensions to Snowflake equivalents or alternatives.",
				"Develop a strategy for converting PL/pgSQL functions and procedures.",
				"Assess and plan for migration of custom functions and any heavily used PostgreSQL extensions.",
			),
			dialect.Teradata: withBase(baseRecommendations,
				"Plan for Teradata script (BTEQ, FastLoad) conversion or replacement with Snowflake-compatible tools.",
				"Analyze Teradata SQL for proprietary features and plan for a rewrite.",
				"Focus the data migration strategy on efficient export from Teradata and bulk ingestion via Snowpipe or COPY.",
			),
			dialect.Lakehouse: withBase(baseRecommendations,
				"Identify and plan for migrating Delta Lake table features and optimizations.",
				"Assess Spark jobs for logic that can be translated to Snowpark or Snowflake SQL.",
				"Define a strategy for data extraction from Delta Lake (e.g. Parquet export) and ingestion into Snowflake.",
			),
			dialect.Snowflake: baseRecommendations,
		},
	}
}
