package bsda

import (
	"bordereau/internal/bsda/models"
	"bordereau/internal/edition"
	"bordereau/pkg/requestcontext"
)

// destinationFields stay editable in the cases isDestinationOpen allows.
var destinationFields = []string{
	string(FieldDestinationCompanyName),
	string(FieldDestinationCompanySiret),
	string(FieldDestinationCompanyAddress),
	string(FieldDestinationCompanyContact),
	string(FieldDestinationCompanyPhone),
	string(FieldDestinationCompanyMail),
}

// Check decides whether editor may apply input to doc.
func Check(doc *models.Bsda, input models.Input, editor requestcontext.Editor) (edition.Changes, error) {
	return edition.Check(Policy, edition.Request{
		Signatures: doc,
		Current:    models.ToInput(doc).Record(),
		Proposed:   input.Record(),
		Bypass:     BypassFor(doc, &input, editor),
	})
}

// SealedFields lists the fields editor can no longer change on doc.
func SealedFields(doc *models.Bsda, editor requestcontext.Editor) []Field {
	return edition.SealedFields(Policy, doc, BypassFor(doc, nil, editor))
}

// BypassFor computes the destination exemption of editor. input is nil when
// no edit is being checked.
func BypassFor(doc *models.Bsda, input *models.Input, editor requestcontext.Editor) edition.Bypass {
	if isDestinationOpen(doc, input, editor) {
		return edition.Bypass{Fields: destinationFields}
	}
	return edition.Bypass{}
}

// isDestinationOpen reports whether the destination company may still change
// although EMISSION is signed:
//   - the emitter may change it until the next signature expected after
//     theirs (WORK with a worker, TRANSPORT otherwise);
//   - any actor may change it while TRANSPORT is unsigned when the edit adds
//     or removes a next destination.
func isDestinationOpen(doc *models.Bsda, input *models.Input, editor requestcontext.Editor) bool {
	content := effective(doc, input)
	isEmitter := editor.BelongsTo(siretOf(doc.Emitter))

	sealedForEmitter := doc.Signatures.Transport != nil
	if content.HasWorker() {
		sealedForEmitter = doc.Signatures.Work != nil
	}
	if isEmitter && !sealedForEmitter {
		return true
	}

	if input == nil || doc.Signatures.Transport != nil {
		return false
	}
	isActor := isEmitter ||
		editor.BelongsTo(siretOfWorker(doc.Worker)) ||
		editor.BelongsTo(siretOfTransporter(doc.Transporter)) ||
		editor.BelongsTo(siretOfDestination(doc.Destination))
	if !isActor {
		return false
	}
	before := doc.Destination.NextDestinationSiret()
	after, provided := proposedNextDestination(input)
	if !provided {
		return false
	}
	return (before == "") != (after == "")
}

// effective overlays the type and worker switch of input on doc, the two
// values deciding whether a worker signs.
func effective(doc *models.Bsda, input *models.Input) models.Content {
	c := models.Content{Type: doc.Type, Worker: doc.Worker}
	if input == nil {
		return c
	}
	if input.Type != nil {
		c.Type = input.Type
	}
	if input.Worker != nil && input.Worker.IsDisabled != nil {
		c.Worker = &models.Worker{IsDisabled: input.Worker.IsDisabled}
	}
	return c
}

func proposedNextDestination(input *models.Input) (string, bool) {
	d := input.Destination
	if d == nil || d.Operation == nil || d.Operation.NextDestination == nil {
		return "", false
	}
	c := d.Operation.NextDestination.Company
	if c == nil || c.Siret == nil {
		return "", false
	}
	return *c.Siret, true
}

func siretOf(e *models.Emitter) string {
	if e == nil {
		return ""
	}
	return e.Company.SiretOrEmpty()
}

func siretOfWorker(w *models.Worker) string {
	if w == nil {
		return ""
	}
	return w.Company.SiretOrEmpty()
}

func siretOfTransporter(t *models.Transporter) string {
	if t == nil || t.Company == nil {
		return ""
	}
	return t.Company.Company.SiretOrEmpty()
}

func siretOfDestination(d *models.Destination) string {
	if d == nil {
		return ""
	}
	return d.Company.SiretOrEmpty()
}
