package taskspgxstore

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktrack/core/scaffolding/fop"
	"github.com/jrazmi/tasktrack/infrastructure/postgresdb"
)

const table = "tasks"

var columns = []string{
	"id",
	"user_id",
	"title",
	"description",
	"status",
	"priority",
	"due_date",
	"version",
	"created_at",
	"updated_at",
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ownerScope is the predicate every statement starts from.
func ownerScope(ownerID, id string) squirrel.And {
	return squirrel.And{
		squirrel.Eq{"id": id},
		squirrel.Eq{"user_id": ownerID},
	}
}

// filterWhere renders a QueryFilter. The owner clause is always first.
func filterWhere(filter tasksrepo.QueryFilter) squirrel.And {
	where := squirrel.And{squirrel.Eq{"user_id": filter.OwnerID}}

	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.Priority != nil {
		where = append(where, squirrel.Eq{"priority": string(*filter.Priority)})
	}
	if filter.Search != nil {
		pattern := postgresdb.ContainsPattern(*filter.Search)
		where = append(where, squirrel.Or{
			squirrel.ILike{"title": pattern},
			squirrel.ILike{"description": pattern},
		})
	}

	return where
}

func listQuery(filter tasksrepo.QueryFilter, page fop.Page) squirrel.SelectBuilder {
	return psql.Select(columns...).
		From(table).
		Where(filterWhere(filter)).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset()))
}

func countQuery(filter tasksrepo.QueryFilter) squirrel.SelectBuilder {
	return psql.Select("COUNT(*)").
		From(table).
		Where(filterWhere(filter))
}

func getQuery(ownerID, id string) squirrel.SelectBuilder {
	return psql.Select(columns...).
		From(table).
		Where(ownerScope(ownerID, id))
}

func insertQuery(task tasksrepo.Task) squirrel.InsertBuilder {
	return psql.Insert(table).
		Columns("id", "user_id", "title", "description", "status", "priority", "due_date", "version").
		Values(task.ID, task.UserID, task.Title, task.Description, string(task.Status), string(task.Priority), task.DueDate, task.Version).
		Suffix("RETURNING " + returning())
}

// updateQuery sets only the fields present in upd and bumps the version.
// When upd carries an expected version the row must still match it.
func updateQuery(ownerID, id string, upd tasksrepo.UpdateTask) squirrel.UpdateBuilder {
	q := psql.Update(table).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()"))

	if upd.Title != nil {
		q = q.Set("title", *upd.Title)
	}
	if upd.Description != nil {
		q = q.Set("description", *upd.Description)
	}
	if upd.Status != nil {
		q = q.Set("status", string(*upd.Status))
	}
	if upd.Priority != nil {
		q = q.Set("priority", string(*upd.Priority))
	}
	if upd.DueDate.Set {
		q = q.Set("due_date", upd.DueDate.Value)
	}

	where := ownerScope(ownerID, id)
	if upd.ExpectedVersion != nil {
		where = append(where, squirrel.Eq{"version": *upd.ExpectedVersion})
	}

	return q.Where(where).Suffix("RETURNING " + returning())
}

func deleteQuery(ownerID, id string) squirrel.DeleteBuilder {
	return psql.Delete(table).Where(ownerScope(ownerID, id))
}

func returning() string {
	return strings.Join(columns, ", ")
}
