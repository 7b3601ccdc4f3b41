// Package access centraliza qué rol puede ejecutar cada operación.
// Los handlers no deciden por su cuenta: consultan esta tabla vía el middleware.
package access

import "github.com/jhoicas/Distribucion-api/internal/domain/entity"

// Operation identifica una operación protegida de la API.
type Operation string

const (
	OpProductsList       Operation = "products.list"
	OpProductsCreate     Operation = "products.create"
	OpProductsBulkCreate Operation = "products.bulk_create"
	OpProductsAvailable  Operation = "products.available"

	OpDistributionsCreate  Operation = "distributions.create"
	OpDistributionsWorkers Operation = "distributions.workers"
	OpDistributionsList    Operation = "distributions.list"

	OpReportsDistributions Operation = "reports.distributions"
	OpReportsProducts      Operation = "reports.product_analytics"
	OpReportsWorkers       Operation = "reports.worker_analytics"

	OpDashboardStats  Operation = "dashboard.stats"
	OpDashboardRecent Operation = "dashboard.recent"

	OpAuthMe Operation = "auth.me"
)

var (
	anyRole      = []string{entity.RoleAdmin, entity.RoleManager, entity.RoleWorker}
	adminManager = []string{entity.RoleAdmin, entity.RoleManager}
	managerOnly  = []string{entity.RoleManager}
)

var table = map[Operation][]string{
	OpProductsList:       adminManager,
	OpProductsCreate:     managerOnly,
	OpProductsBulkCreate: managerOnly,
	OpProductsAvailable:  managerOnly,

	OpDistributionsCreate:  managerOnly,
	OpDistributionsWorkers: managerOnly,
	OpDistributionsList:    anyRole,

	OpReportsDistributions: anyRole,
	OpReportsProducts:      anyRole,
	OpReportsWorkers:       anyRole,

	OpDashboardStats:  anyRole,
	OpDashboardRecent: anyRole,

	OpAuthMe: anyRole,
}

// Allowed informa si role puede ejecutar op. Operaciones desconocidas se niegan.
func Allowed(op Operation, role string) bool {
	for _, r := range table[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Roles devuelve una copia de los roles permitidos para op.
func Roles(op Operation) []string {
	return append([]string(nil), table[op]...)
}

// Operations lista todas las operaciones registradas.
func Operations() []Operation {
	ops := make([]Operation, 0, len(table))
	for op := range table {
		ops = append(ops, op)
	}
	return ops
}
