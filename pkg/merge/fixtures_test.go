// Copyright © 2018 One Concern

package merge

import (
	"time"

	"github.com/oneconcern/docmon/pkg/model"
)

var testClock = func() time.Time { return time.Date(2021, 3, 4, 10, 0, 0, 0, time.UTC) }

func doc(content string, kv ...interface{}) *model.Document {
	meta := model.NewMetadata()
	for i := 0; i+1 < len(kv); i += 2 {
		meta.Set(kv[i].(string), kv[i+1])
	}
	return model.NewDocument("plan.md", meta, content)
}
