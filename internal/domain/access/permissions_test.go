package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Distribucion-api/internal/domain/access"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		op   access.Operation
		role string
		want bool
	}{
		{access.OpProductsList, "admin", true},
		{access.OpProductsList, "manager", true},
		{access.OpProductsList, "worker", false},
		{access.OpProductsCreate, "manager", true},
		{access.OpProductsCreate, "admin", false},
		{access.OpProductsBulkCreate, "worker", false},
		{access.OpProductsAvailable, "manager", true},
		{access.OpDistributionsCreate, "manager", true},
		{access.OpDistributionsCreate, "admin", false},
		{access.OpDistributionsCreate, "worker", false},
		{access.OpDistributionsList, "worker", true},
		{access.OpReportsWorkers, "worker", true},
		{access.OpDashboardStats, "admin", true},
		{access.OpAuthMe, "worker", true},
		{access.OpAuthMe, "", false},
		{access.Operation("desconocida"), "admin", false},
	}
	for _, tc := range cases {
		t.Run(string(tc.op)+"/"+tc.role, func(t *testing.T) {
			assert.Equal(t, tc.want, access.Allowed(tc.op, tc.role))
		})
	}
}

func TestOperations_TodasTienenRoles(t *testing.T) {
	for _, op := range access.Operations() {
		assert.NotEmpty(t, access.Roles(op), "operación %s sin roles", op)
	}
}

func TestRoles_DevuelveCopia(t *testing.T) {
	roles := access.Roles(access.OpProductsList)
	roles[0] = "hacker"
	assert.True(t, access.Allowed(access.OpProductsList, "admin"))
}
