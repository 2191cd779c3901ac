package rel

import (
	u "github.com/araddon/gou"
)

// VisitStatus surfaces status to visit builders
// if visit was completed, successful or needs to go deeper
type VisitStatus int

const (
	VisitUnknown  VisitStatus = 0 // not used
	VisitError    VisitStatus = 1 // error
	VisitFinal    VisitStatus = 2 // final, do not descend into nested queries
	VisitContinue VisitStatus = 3 // continue visit into nested queries
)

// Visitor defines the Visit Pattern, so downstream packages (linters,
// digest collectors, schema trackers) can act on parsed statements
// without a type switch of their own.
type Visitor interface {
	VisitSelect(stmt *SqlSelect) (VisitStatus, error)
	VisitUnion(stmt *SqlUnion) (VisitStatus, error)
	VisitInsert(stmt *SqlInsert) (VisitStatus, error)
	VisitUpdate(stmt *SqlUpdate) (VisitStatus, error)
	VisitDelete(stmt *SqlDelete) (VisitStatus, error)
	VisitSet(stmt *SqlSet) (VisitStatus, error)
	// VisitDdl CREATE, ALTER, DROP, RENAME and TRUNCATE statements
	VisitDdl(stmt Statement) (VisitStatus, error)
}

// Visit dispatches stmt to v.  When v answers VisitContinue the nested
// queries are visited too; union members, derived tables, INSERT ... SELECT,
// CREATE TABLE ... SELECT and view definitions.
func Visit(v Visitor, stmt Statement) (VisitStatus, error) {
	var status VisitStatus
	var err error
	var nested []Query

	switch st := stmt.(type) {
	case *SqlSelect:
		status, err = v.VisitSelect(st)
		nested = st.subQueries()
	case *SqlUnion:
		status, err = v.VisitUnion(st)
		for _, sel := range st.Selects {
			nested = append(nested, sel)
		}
	case *SqlInsert:
		status, err = v.VisitInsert(st)
		if st.Select != nil {
			nested = append(nested, st.Select)
		}
	case *SqlUpdate:
		status, err = v.VisitUpdate(st)
	case *SqlDelete:
		status, err = v.VisitDelete(st)
	case *SqlSet:
		status, err = v.VisitSet(st)
	case *SqlCreateTable:
		status, err = v.VisitDdl(st)
		if st.Select != nil {
			nested = append(nested, st.Select)
		}
	case *SqlCreateView:
		status, err = v.VisitDdl(st)
		nested = append(nested, st.Select)
	default:
		status, err = v.VisitDdl(stmt)
	}
	if err != nil {
		u.Debugf("visit %T failed: %v", stmt, err)
		return VisitError, err
	}
	if status != VisitContinue {
		return status, nil
	}
	for _, q := range nested {
		if status, err := Visit(v, q); err != nil {
			return status, err
		}
	}
	return VisitFinal, nil
}

// subQueries the derived tables of the FROM clause
func (m *SqlSelect) subQueries() []Query {
	var qs []Query
	if m.From != nil && m.From.SubQuery != nil {
		qs = append(qs, m.From.SubQuery)
	}
	for _, j := range m.Joins {
		if j.Table.SubQuery != nil {
			qs = append(qs, j.Table.SubQuery)
		}
	}
	return qs
}
