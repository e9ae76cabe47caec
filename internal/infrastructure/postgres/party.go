package postgres

import "github.com/jhoicas/textil-erp/internal/domain/repository"

// Proveedores y clientes comparten forma de tabla.
const partyColumns = `id, name, tax_id, email, phone, is_active, created_at, updated_at`

func partyListQuery(table string, f repository.PartyFilter) (string, []any) {
	var w where
	if f.Search != "" {
		p := likePattern(f.Search)
		w.add("(name ILIKE ? OR tax_id ILIKE ?)", p, p)
	}
	if f.ActiveOnly {
		w.add("is_active")
	}
	query := `SELECT ` + partyColumns + ` FROM ` + table + w.String() + ` ORDER BY name` + w.paginate(f.Page)
	return query, w.args
}
