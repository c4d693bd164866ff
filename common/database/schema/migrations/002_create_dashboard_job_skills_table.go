package migrations

import "aijobs/common/database/schema"

var CreateDashboardJobSkillsTable = schema.Migration{
	Version:     2,
	Description: "Create dashboard job skills table",
	Up: `
		CREATE TABLE IF NOT EXISTS dashboard_job_skills (
			job_uuid UUID,
			run_id UUID,
			job_id String,
			position UInt16,
			skill String,
			job_title String,
			salary_usd Nullable(Float64),
			experience_level String,
			industry String,
			company_size String,
			loaded_at DateTime
		) ENGINE = ReplacingMergeTree(loaded_at)
		ORDER BY (job_uuid, position)
	`,
	Down: `DROP TABLE IF EXISTS dashboard_job_skills`,
}

// All lists every migration in version order.
func All() []schema.Migration {
	return []schema.Migration{
		CreateDashboardJobsTable,
		CreateDashboardJobSkillsTable,
	}
}
