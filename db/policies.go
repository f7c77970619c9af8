package db

import "gorm.io/gorm"

// Row-level security for the shared ledger. The rules here are the SQL
// rendering of internal/policy and are enforced by Postgres itself, so no
// code path that reaches the database can bypass them. The store binds the
// caller's identity per transaction via set_config('duopot.user_id', ...);
// duopot_uid() reads it back, yielding NULL for an unauthenticated caller,
// which denies every operation.
//
// profiles has no DELETE policy on purpose: rows leave the table only by
// cascade when the account is removed, and referential actions are exempt
// from row security.
var policyStatements = []string{
	`CREATE OR REPLACE FUNCTION duopot_uid() RETURNS bigint AS
	 $$ SELECT NULLIF(current_setting('duopot.user_id', true), '')::bigint $$
	 LANGUAGE sql STABLE`,

	`ALTER TABLE profiles ENABLE ROW LEVEL SECURITY`,
	`ALTER TABLE profiles FORCE ROW LEVEL SECURITY`,
	`DROP POLICY IF EXISTS profiles_select ON profiles`,
	`CREATE POLICY profiles_select ON profiles FOR SELECT
	 USING (duopot_uid() IS NOT NULL)`,
	`DROP POLICY IF EXISTS profiles_insert ON profiles`,
	`CREATE POLICY profiles_insert ON profiles FOR INSERT
	 WITH CHECK (id = duopot_uid())`,
	`DROP POLICY IF EXISTS profiles_update ON profiles`,
	`CREATE POLICY profiles_update ON profiles FOR UPDATE
	 USING (id = duopot_uid())
	 WITH CHECK (id = duopot_uid())`,

	`ALTER TABLE savings ENABLE ROW LEVEL SECURITY`,
	`ALTER TABLE savings FORCE ROW LEVEL SECURITY`,
	`DROP POLICY IF EXISTS savings_select ON savings`,
	`CREATE POLICY savings_select ON savings FOR SELECT
	 USING (duopot_uid() IS NOT NULL)`,
	`DROP POLICY IF EXISTS savings_insert ON savings`,
	`CREATE POLICY savings_insert ON savings FOR INSERT
	 WITH CHECK (user_id = duopot_uid())`,
	`DROP POLICY IF EXISTS savings_update ON savings`,
	`CREATE POLICY savings_update ON savings FOR UPDATE
	 USING (user_id = duopot_uid())
	 WITH CHECK (user_id = duopot_uid())`,
	`DROP POLICY IF EXISTS savings_delete ON savings`,
	`CREATE POLICY savings_delete ON savings FOR DELETE
	 USING (user_id = duopot_uid())`,
}

// InstallPolicies applies the row security DDL. It is idempotent and only
// meaningful on Postgres; other dialects (the in-memory test database) rely
// on the store's own policy evaluation.
func InstallPolicies(gdb *gorm.DB) error {
	if gdb.Dialector.Name() != "postgres" {
		return nil
	}

	for _, stmt := range policyStatements {
		if err := gdb.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
