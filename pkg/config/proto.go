package config

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// Proto converts a document to its protobuf Struct form, for callers
// serializing through protojson or shipping documents over proto
// transports. Scalars stay strings; the daemons have no typed schema.
func (m Map) Proto() (*structpb.Struct, error) {
	raw, _ := ToAny(m).(map[string]any)
	return structpb.NewStruct(raw)
}
