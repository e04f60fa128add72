package store

import (
	"strconv"
	"tembea/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// toDocument flattens driver-specific BSON types into plain Go values and
// exposes _id as "id".
func toDocument(raw bson.M) model.Document {
	doc := make(model.Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			doc["id"] = idString(v)
			continue
		}
		doc[k] = convertValue(v)
	}
	return doc
}

func idString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		if s, ok := convertValue(v).(string); ok {
			return s
		}
		return ""
	}
}

func convertValue(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.Timestamp:
		return int64(val.T)
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(val.String(), 64)
		if err != nil {
			return val.String()
		}
		return f
	case primitive.A:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = convertValue(item)
		}
		return out
	case bson.M:
		return convertMap(val)
	case map[string]any:
		return convertMap(val)
	case bson.D:
		out := make(map[string]any, len(val))
		for _, e := range val {
			out[e.Key] = convertValue(e.Value)
		}
		return out
	default:
		return v
	}
}

func convertMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = convertValue(v)
	}
	return out
}
