package testutil

import (
	"github.com/google/uuid"
)

// Fixed identifiers for deterministic testing.
var (
	TestTenantID    = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestOtherTenant = uuid.MustParse("00000000-0000-0000-0000-000000000011")
)

// TestApplicantID is the applicant reference used across fixtures.
const TestApplicantID = "applicant-001"
