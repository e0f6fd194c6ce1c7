package pagination

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Join is a left-outer lookup into another collection. Only the Project
// fields (and _id) of the joined document are kept. Single joins are
// flattened so the field holds an object or is absent; Many joins stay arrays.
// Joined documents failing Match are left out.
type Join struct {
	From         string
	LocalField   string
	ForeignField string
	As           string
	Project      []string
	Match        bson.D
	Many         bool
}

func (j Join) stages() []bson.D {
	lookup := bson.D{
		{Key: "from", Value: j.From},
		{Key: "localField", Value: j.LocalField},
		{Key: "foreignField", Value: j.ForeignField},
	}
	var sub bson.A
	if len(j.Match) > 0 {
		sub = append(sub, bson.D{{Key: "$match", Value: j.Match}})
	}
	if len(j.Project) > 0 {
		sub = append(sub, bson.D{{Key: "$project", Value: projection(j.Project)}})
	}
	if len(sub) > 0 {
		lookup = append(lookup, bson.E{Key: "pipeline", Value: sub})
	}
	lookup = append(lookup, bson.E{Key: "as", Value: j.As})

	stages := []bson.D{{{Key: "$lookup", Value: lookup}}}
	if !j.Many {
		stages = append(stages, bson.D{{Key: "$addFields", Value: bson.D{
			{Key: j.As, Value: bson.D{{Key: "$first", Value: "$" + j.As}}},
		}}})
	}
	return stages
}

// Query describes one page of a collection.
type Query struct {
	Filter  bson.D
	Joins   []Join
	Project []string
	Page    PageRequest
}

func (q Query) filter() bson.D {
	if q.Filter == nil {
		return bson.D{}
	}
	return q.Filter
}

// Pipeline sorts and slices before joining so that the page boundaries do
// not depend on the related collections.
func (q Query) Pipeline() mongo.Pipeline {
	page := q.Page.Normalize()

	sort := bson.D{{Key: page.SortField, Value: page.SortOrder()}}
	if page.SortField != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: page.SortOrder()})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: q.filter()}},
		{{Key: "$sort", Value: sort}},
		{{Key: "$skip", Value: page.Skip()}},
		{{Key: "$limit", Value: int64(page.Limit)}},
	}
	return append(pipeline, q.enrichment()...)
}

// singlePipeline matches at most one document and enriches it.
func (q Query) singlePipeline() mongo.Pipeline {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: q.filter()}},
		{{Key: "$limit", Value: int64(1)}},
	}
	return append(pipeline, q.enrichment()...)
}

func (q Query) enrichment() []bson.D {
	var stages []bson.D
	for _, j := range q.Joins {
		stages = append(stages, j.stages()...)
	}
	if len(q.Project) > 0 {
		fields := append([]string{}, q.Project...)
		for _, j := range q.Joins {
			fields = append(fields, j.As)
		}
		stages = append(stages, bson.D{{Key: "$project", Value: projection(fields)}})
	}
	return stages
}

func projection(fields []string) bson.D {
	seen := make(map[string]bool, len(fields))
	proj := make(bson.D, 0, len(fields))
	for _, f := range fields {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		proj = append(proj, bson.E{Key: f, Value: 1})
	}
	return proj
}

// Eq matches field == value.
func Eq(field string, value interface{}) bson.E {
	return bson.E{Key: field, Value: value}
}

// ContainsFold matches a case-insensitive substring. Blank text yields an
// empty element that And drops.
func ContainsFold(field, text string) bson.E {
	if text == "" {
		return bson.E{}
	}
	return bson.E{Key: field, Value: primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}}
}

// And combines conditions, skipping empty ones.
func And(conds ...bson.E) bson.D {
	filter := bson.D{}
	for _, c := range conds {
		if c.Key == "" {
			continue
		}
		filter = append(filter, c)
	}
	return filter
}
