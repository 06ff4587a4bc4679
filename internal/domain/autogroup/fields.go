// internal/domain/autogroup/fields.go
package autogroup

import (
	"strings"
	"time"

	"github.com/dalemusser/cohortsync/internal/domain/models"
)

// The field table below is the one place that maps raw record keys to
// typed Group attributes. Hydration and serialization both walk it, so
// adding an attribute means adding one line here. A value of the wrong
// type is treated the same as an absent one: the declared default stays.

type fieldDef struct {
	key string
	set func(g *models.Group, v any)
	get func(g *models.Group) any
}

func intField(key string, fp func(*models.Group) *int64) fieldDef {
	return fieldDef{
		key: key,
		set: func(g *models.Group, v any) {
			if n, ok := asInt64(v); ok {
				*fp(g) = n
			}
		},
		get: func(g *models.Group) any { return *fp(g) },
	}
}

func strField(key string, fp func(*models.Group) *string) fieldDef {
	return fieldDef{
		key: key,
		set: func(g *models.Group, v any) {
			if s, ok := v.(string); ok {
				*fp(g) = s
			}
		},
		get: func(g *models.Group) any { return *fp(g) },
	}
}

var groupFields = []fieldDef{
	intField("id", func(g *models.Group) *int64 { return &g.ID }),
	intField("course_id", func(g *models.Group) *int64 { return &g.CourseID }),
	strField("name", func(g *models.Group) *string { return &g.Name }),
	strField("id_number", func(g *models.Group) *string { return &g.IDNumber }),
	strField("description", func(g *models.Group) *string { return &g.Description }),
	intField("description_format", func(g *models.Group) *int64 { return &g.DescriptionFormat }),
	strField("enrolment_key", func(g *models.Group) *string { return &g.EnrolmentKey }),
	intField("picture", func(g *models.Group) *int64 { return &g.Picture }),
	intField("visible", func(g *models.Group) *int64 { return &g.Visible }),
	intField("participation", func(g *models.Group) *int64 { return &g.Participation }),
	intField("time_created", func(g *models.Group) *int64 { return &g.TimeCreated }),
	intField("time_modified", func(g *models.Group) *int64 { return &g.TimeModified }),
}

// validate reports whether rec can back a legitimate autogroup entity.
// Absent timestamps are defaulted in place (time_created to now,
// time_modified to 0) before the checks run; an absent id means the
// group is not yet persisted and defaults to 0.
func validate(rec Record) bool {
	if rec == nil {
		return false
	}
	if _, ok := rec["time_created"]; !ok {
		rec["time_created"] = time.Now().Unix()
	}
	if _, ok := rec["time_modified"]; !ok {
		rec["time_modified"] = int64(0)
	}
	if _, ok := rec["id"]; !ok {
		rec["id"] = int64(0)
	}
	if id, ok := asInt64(rec["id"]); !ok || id < 0 {
		return false
	}
	if name, ok := rec["name"].(string); !ok || name == "" {
		return false
	}
	idNumber, ok := rec["id_number"].(string)
	return ok && strings.Contains(idNumber, Marker)
}

// hydrate copies every recognized field present on rec into a typed
// Group, leaving defaults for missing or unusable values. Unrecognized
// keys are ignored.
func hydrate(rec Record) models.Group {
	g := models.Group{
		Visible:       1,
		Participation: 1,
	}
	for _, f := range groupFields {
		if v, ok := rec[f.key]; ok {
			f.set(&g, v)
		}
	}
	return g
}

// serialize is the inverse of hydrate: the full current attribute set
// as a raw record, with no value re-normalization.
func serialize(g *models.Group) Record {
	rec := make(Record, len(groupFields))
	for _, f := range groupFields {
		rec[f.key] = f.get(g)
	}
	return rec
}

// asInt64 coerces the numeric types a raw record can plausibly carry.
// BSON decoding yields int32/int64/float64 depending on the writer.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
