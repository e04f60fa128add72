package model

// Document is a schema-less record as read from the document store. The store
// adapter exposes the record identifier under the "id" key.
type Document map[string]any

func (d Document) ID() string {
	if id, ok := d["id"].(string); ok {
		return id
	}
	return ""
}
