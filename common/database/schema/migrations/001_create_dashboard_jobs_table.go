package migrations

import "aijobs/common/database/schema"

var CreateDashboardJobsTable = schema.Migration{
	Version:     1,
	Description: "Create dashboard jobs fact table",
	Up: `
		CREATE TABLE IF NOT EXISTS dashboard_jobs (
			id UUID,
			run_id UUID,
			job_id String,
			job_title String,
			industry String,
			employment_type String,
			experience_level String,
			experience_level_full String,
			experience_category String,
			years_experience Int32,
			salary_usd Nullable(Float64),
			salary_range String,
			remote_ratio Int32,
			remote_category String,
			company_size String,
			company_name String,
			company_location String,
			employee_residence String,
			posting_date Date,
			posting_year_month String,
			posting_quarter UInt8,
			application_deadline Nullable(Date),
			is_active Bool,
			benefits_score Nullable(Float64),
			benefits_category String,
			required_skills Nullable(String),
			job_description_length Nullable(Int32),
			loaded_at DateTime
		) ENGINE = ReplacingMergeTree(loaded_at)
		PARTITION BY toYYYYMM(posting_date)
		ORDER BY (id)
		SETTINGS index_granularity = 8192
	`,
	Down: `DROP TABLE IF EXISTS dashboard_jobs`,
}
