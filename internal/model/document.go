package model

// Document is a schemaless record as stored. Tuitions, applicants and connects
// carry whatever fields the client posted, plus the generated _id.
type Document map[string]interface{}

const (
	KeyID        = "_id"
	KeyEmail     = "email"
	KeySubjectID = "subjectId"
)

// StringField returns the value under key when it is a string.
func (d Document) StringField(key string) (string, bool) {
	v, ok := d[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// WithoutID returns a shallow copy without the _id key so the store assigns one.
func (d Document) WithoutID() Document {
	out := make(Document, len(d))
	for k, v := range d {
		if k == KeyID {
			continue
		}
		out[k] = v
	}
	return out
}
