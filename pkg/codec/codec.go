// Copyright © 2018 One Concern

package codec

import (
	"bytes"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oneconcern/docmon/pkg/model"
	"github.com/oneconcern/docmon/pkg/semver"
	"github.com/oneconcern/docmon/pkg/status"
	"gopkg.in/yaml.v2"
)

const delimiter = "---"

// Parse a document from its textual representation.
//
// Text without a leading metadata block yields empty metadata and the whole text as content.
func Parse(text string) (*model.Metadata, string, error) {
	first, rest, ok := cutLine(text)
	if !ok || first != delimiter {
		return model.NewMetadata(), text, nil
	}

	var block strings.Builder
	for {
		line, remainder, found := cutLine(rest)
		if !found {
			return nil, "", status.ErrValidation.WrapMessage("metadata block is not terminated by a %q line", delimiter)
		}
		rest = remainder
		if line == delimiter {
			break
		}
		block.WriteString(line)
		block.WriteByte('\n')
	}

	meta := model.NewMetadata()
	if strings.TrimSpace(block.String()) != "" {
		if err := yaml.Unmarshal([]byte(block.String()), meta); err != nil {
			return nil, "", status.ErrValidation.Wrap(err)
		}
	}
	return meta, rest, nil
}

// cutLine splits the first line from text. The line is returned without its terminator.
//
// ok is false when text is empty or when its first line is not terminated.
func cutLine(text string) (line, rest string, ok bool) {
	pos := strings.IndexByte(text, '\n')
	if pos < 0 {
		if text == "" {
			return "", "", false
		}
		return strings.TrimSuffix(text, "\r"), "", text == delimiter
	}
	return strings.TrimSuffix(text[:pos], "\r"), text[pos+1:], true
}

// Render a document as text
func Render(meta *model.Metadata, content string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter + "\n")
	if meta.Len() > 0 {
		b, err := yaml.Marshal(meta)
		if err != nil {
			return "", status.ErrValidation.Wrap(err)
		}
		buf.Write(b)
	}
	buf.WriteString(delimiter + "\n")
	buf.WriteString(content)
	return buf.String(), nil
}

// ParseDocument parses a document and binds it to identity
func ParseDocument(identity model.Identity, text string) (*model.Document, error) {
	meta, content, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return model.NewDocument(identity, meta, content), nil
}

// RenderDocument renders a document as text
func RenderDocument(doc *model.Document) (string, error) {
	return Render(doc.Metadata, doc.Content)
}

// NewDocument builds a new document, filling in default metadata.
//
// Defaults are only set for fields absent from meta: title, uuid, created_at, updated_at and version.
func NewDocument(identity model.Identity, meta *model.Metadata, content string) *model.Document {
	now := time.Now().Format(model.DateFormat)
	if meta == nil {
		meta = model.NewMetadata()
	}
	defaults := model.NewMetadata().
		Set(model.FieldTitle, defaultTitle(identity)).
		Set(model.FieldUUID, uuid.New().String()).
		Set(model.FieldCreatedAt, now).
		Set(model.FieldUpdatedAt, now).
		Set(model.FieldVersion, semver.Zero)
	for _, k := range defaults.Keys() {
		if !meta.Has(k) {
			meta.Set(k, defaults.Value(k))
		}
	}
	return model.NewDocument(identity, meta, content)
}

func defaultTitle(identity model.Identity) string {
	if identity.IsZero() {
		return "Untitled"
	}
	name := identity.String()
	if pos := strings.LastIndex(name, "/"); pos >= 0 {
		name = name[pos+1:]
	}
	if pos := strings.LastIndex(name, "."); pos > 0 {
		name = name[:pos]
	}
	return name
}
