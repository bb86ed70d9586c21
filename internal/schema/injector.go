package schema

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/terroirai/terroir-web/internal/head"
	"github.com/terroirai/terroir-web/internal/metadata"
)

/*
Responsibilities
- Serialize structured-data documents as JSON-LD
- Keep exactly one primary block, replaced on every SetPrimary
- Keep at most one block per secondary key, independent of the primary

A document that cannot be serialized leaves the previous block in place and
is recorded; nothing is returned to the page.
*/
type Injector struct {
	doc          *head.Document
	metadataSink metadata.MetadataSink
}

func NewInjector(doc *head.Document, metadataSink metadata.MetadataSink) *Injector {
	return &Injector{
		doc:          doc,
		metadataSink: metadataSink,
	}
}

func (i *Injector) SetPrimary(document any) {
	body, ok := i.encode("Injector.SetPrimary", "primary", document)
	if !ok {
		return
	}
	i.doc.SetPrimaryScript(body)
	i.flush("Injector.SetPrimary", "primary")
}

func (i *Injector) SetSecondary(key string, document any) {
	body, ok := i.encode("Injector.SetSecondary", key, document)
	if !ok {
		return
	}
	i.doc.SetSecondaryScript(key, body)
	i.flush("Injector.SetSecondary", key)
}

func (i *Injector) RemovePrimary() {
	i.doc.RemovePrimaryScript()
	i.flush("Injector.RemovePrimary", "primary")
}

func (i *Injector) RemoveSecondary(key string) {
	i.doc.RemoveSecondaryScript(key)
	i.flush("Injector.RemoveSecondary", key)
}

func (i *Injector) encode(action string, slot string, document any) (string, bool) {
	body, err := json.Marshal(document)
	if err != nil {
		i.record(action, slot, metadata.CauseContentInvalid, err)
		return "", false
	}
	return string(body), true
}

func (i *Injector) flush(action string, slot string) {
	if err := i.doc.Flush(); err != nil {
		cause := metadata.CauseUnknown
		var headErr *head.HeadError
		if errors.As(err, &headErr) {
			cause = head.MapToMetadataCause(headErr)
		}
		i.record(action, slot, cause, err)
	}
}

func (i *Injector) record(action string, slot string, cause metadata.ErrorCause, err error) {
	i.metadataSink.RecordError(
		time.Now(),
		"schema",
		action,
		cause,
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrKey, slot),
		},
	)
}
