package tasksmongostore

import (
	"regexp"
	"time"

	"github.com/jrazmi/tasktrack/core/repositories/tasksrepo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ownerScope(ownerID, id string) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "user", Value: ownerID},
	}
}

// filterDoc renders a QueryFilter as a find filter. Search text is quoted so
// it matches literally, case-insensitively, in title or description.
func filterDoc(filter tasksrepo.QueryFilter) bson.D {
	doc := bson.D{{Key: "user", Value: filter.OwnerID}}

	if filter.Status != nil {
		doc = append(doc, bson.E{Key: "status", Value: string(*filter.Status)})
	}
	if filter.Priority != nil {
		doc = append(doc, bson.E{Key: "priority", Value: string(*filter.Priority)})
	}
	if filter.Search != nil {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(*filter.Search), Options: "i"}
		doc = append(doc, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "description", Value: re}},
		}})
	}

	return doc
}

// updateDoc sets the fields present in upd and bumps the version.
func updateDoc(upd tasksrepo.UpdateTask, now time.Time) bson.D {
	set := bson.D{{Key: "updatedAt", Value: now}}

	if upd.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *upd.Title})
	}
	if upd.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *upd.Description})
	}
	if upd.Status != nil {
		set = append(set, bson.E{Key: "status", Value: string(*upd.Status)})
	}
	if upd.Priority != nil {
		set = append(set, bson.E{Key: "priority", Value: string(*upd.Priority)})
	}
	if upd.DueDate.Set {
		if upd.DueDate.Value == nil {
			set = append(set, bson.E{Key: "dueDate", Value: nil})
		} else {
			set = append(set, bson.E{Key: "dueDate", Value: *upd.DueDate.Value})
		}
	}

	return bson.D{
		{Key: "$set", Value: set},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}
}
