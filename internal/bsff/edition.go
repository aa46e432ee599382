package bsff

import (
	"bordereau/internal/bsff/models"
	"bordereau/internal/edition"
	"bordereau/pkg/requestcontext"
)

// Check decides whether editor may apply input to doc.
func Check(doc *models.Bsff, input models.Input, editor requestcontext.Editor) (edition.Changes, error) {
	return edition.Check(Policy, edition.Request{
		Signatures: doc,
		Current:    models.ToInput(doc).Record(),
		Proposed:   input.Record(),
		Bypass:     BypassFor(doc, editor),
		Seals:      []edition.Seal{transporterSeal(doc, input)},
	})
}

// SealedFields lists the fields editor can no longer change on doc.
func SealedFields(doc *models.Bsff, editor requestcontext.Editor) []Field {
	return edition.SealedFields(Policy, doc, BypassFor(doc, editor))
}

// BypassFor reopens EMISSION for the emitter until TRANSPORT is signed.
func BypassFor(doc *models.Bsff, editor requestcontext.Editor) edition.Bypass {
	if doc.Emitter == nil || !editor.BelongsTo(doc.Emitter.Company.SiretOrEmpty()) {
		return edition.Bypass{}
	}
	if !models.Chain.IsAwaitingSignature(edition.SignatureTransport, doc) {
		return edition.Bypass{}
	}
	return edition.Bypass{Reopened: []edition.SignatureType{edition.SignatureEmission}}
}

// CheckPackaging decides whether input may be applied to packaging p of doc.
func CheckPackaging(doc *models.Bsff, p *models.Packaging, input models.PackagingInput) (edition.Changes, error) {
	return edition.Check(PackagingPolicy, edition.Request{
		Signatures: doc.PackagingSignatures(p),
		Current:    p.PackagingInput.Record(),
		Proposed:   input.Record(),
	})
}

// SealedPackagingFields lists the fields of p that can no longer change.
func SealedPackagingFields(doc *models.Bsff, p *models.Packaging) []PackagingField {
	return edition.SealedFields(PackagingPolicy, doc.PackagingSignatures(p), edition.Bypass{})
}
