package app

import (
	"fmt"

	"github.com/mmrzaf/ddlgen/internal/domain"
	"github.com/mmrzaf/ddlgen/internal/exec"
	pgTarget "github.com/mmrzaf/ddlgen/internal/infra/targets/postgres"
	sqliteTarget "github.com/mmrzaf/ddlgen/internal/infra/targets/sqlite"
)

func buildTarget(t *domain.TargetConfig) (exec.Target, error) {
	switch t.Kind {
	case domain.TargetKindPostgres:
		return pgTarget.NewPostgresTarget(t.DSN, "public"), nil
	case domain.TargetKindSQLite:
		return sqliteTarget.NewSQLiteTarget(t.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported target kind: %s", t.Kind)
	}
}
