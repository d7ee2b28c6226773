package config

import (
	"context"
	"strings"

	"github.com/mmdatafocus/intake_backend/appctx"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const RoleSupervisor = "supervisor"

// OwnerGuardPlugin scopes reads and deletes of owned rows to the worker on
// the request context when the model has a username column.
//
// NOTE:
// - Raw SQL is not scoped.
// - Supervisors see every row.
type OwnerGuardPlugin struct{}

func NewOwnerGuardPlugin() *OwnerGuardPlugin { return &OwnerGuardPlugin{} }

func (p *OwnerGuardPlugin) Name() string { return "owner_guard" }

func (p *OwnerGuardPlugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Query().Before("gorm:query").Register("owner_guard:query", ownerGuardCallback); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("owner_guard:row", ownerGuardCallback); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("owner_guard:delete", ownerGuardCallback); err != nil {
		return err
	}
	return nil
}

func ownerGuardCallback(db *gorm.DB) {
	if db == nil || db.Statement == nil || db.Statement.Schema == nil {
		return
	}
	ctx := db.Statement.Context
	if ctx == nil || isSupervisor(ctx) {
		return
	}
	username, _ := appctx.GetString(ctx, appctx.ContextKeyUsername)
	if username == "" {
		return
	}
	if db.Statement.Schema.LookUpField("username") == nil {
		return
	}
	if whereHasColumn(db.Statement.Clauses["WHERE"], "username") {
		return
	}
	db.Statement.AddClause(clause.Where{
		Exprs: []clause.Expression{
			clause.Eq{
				Column: clause.Column{Table: db.Statement.Table, Name: "username"},
				Value:  username,
			},
		},
	})
}

func isSupervisor(ctx context.Context) bool {
	role, _ := appctx.GetString(ctx, appctx.ContextKeyRole)
	return strings.EqualFold(role, RoleSupervisor)
}

func whereHasColumn(c clause.Clause, name string) bool {
	w, ok := c.Expression.(clause.Where)
	if !ok {
		return false
	}
	for _, e := range w.Exprs {
		if exprHasColumn(e, name) {
			return true
		}
	}
	return false
}

func exprHasColumn(e clause.Expression, name string) bool {
	switch v := e.(type) {
	case clause.Eq:
		return colIs(v.Column, name)
	case clause.IN:
		return colIs(v.Column, name)
	case clause.AndConditions:
		for _, x := range v.Exprs {
			if exprHasColumn(x, name) {
				return true
			}
		}
	case clause.Expr:
		return strings.Contains(strings.ToLower(v.SQL), name)
	}
	return false
}

func colIs(col any, name string) bool {
	switch c := col.(type) {
	case string:
		return strings.EqualFold(c, name)
	case clause.Column:
		return strings.EqualFold(c.Name, name)
	}
	return false
}
