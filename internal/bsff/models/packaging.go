package models

import (
	"time"

	"bordereau/internal/edition"
)

// PackagingChain is the signature hierarchy of one packaging. EMISSION is
// the emission signature of the parent BSFF.
var PackagingChain = edition.Chain{
	edition.SignatureEmission,
	edition.SignatureAcceptation,
	edition.SignatureOperation,
}

// Acceptation statuses.
const (
	AcceptationAccepted = "ACCEPTED"
	AcceptationRefused  = "REFUSED"
)

// PackagingContent is what the emitter declares for a packaging when
// editing the BSFF.
type PackagingContent struct {
	Type   *string  `json:"type,omitempty"`
	Other  *string  `json:"other,omitempty"`
	Volume *float64 `json:"volume,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
	Numero *string  `json:"numero,omitempty"`
}

func (p PackagingContent) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "type", p.Type)
	edition.Put(r, "other", p.Other)
	edition.Put(r, "volume", p.Volume)
	edition.Put(r, "weight", p.Weight)
	edition.Put(r, "numero", p.Numero)
	return r
}

type Acceptation struct {
	Date             *time.Time `json:"date,omitempty"`
	Status           *string    `json:"status,omitempty"`
	RefusalReason    *string    `json:"refusalReason,omitempty"`
	Weight           *float64   `json:"weight,omitempty"`
	WasteCode        *string    `json:"wasteCode,omitempty"`
	WasteDescription *string    `json:"wasteDescription,omitempty"`
}

func (a Acceptation) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "date", a.Date)
	edition.Put(r, "status", a.Status)
	edition.Put(r, "refusalReason", a.RefusalReason)
	edition.Put(r, "weight", a.Weight)
	edition.Put(r, "wasteCode", a.WasteCode)
	edition.Put(r, "wasteDescription", a.WasteDescription)
	return r
}

type NextDestination struct {
	Company              *ForeignCompany `json:"company,omitempty"`
	Cap                  *string         `json:"cap,omitempty"`
	PlannedOperationCode *string         `json:"plannedOperationCode,omitempty"`
}

func (n NextDestination) Record() edition.Record {
	r := edition.Record{}
	putSection(r, "company", n.Company)
	edition.Put(r, "cap", n.Cap)
	edition.Put(r, "plannedOperationCode", n.PlannedOperationCode)
	return r
}

type Operation struct {
	Date            *time.Time       `json:"date,omitempty"`
	Code            *string          `json:"code,omitempty"`
	Mode            *string          `json:"mode,omitempty"`
	Description     *string          `json:"description,omitempty"`
	NoTraceability  *bool            `json:"noTraceability,omitempty"`
	NextDestination *NextDestination `json:"nextDestination,omitempty"`
}

func (o Operation) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "date", o.Date)
	edition.Put(r, "code", o.Code)
	edition.Put(r, "mode", o.Mode)
	edition.Put(r, "description", o.Description)
	edition.Put(r, "noTraceability", o.NoTraceability)
	putSection(r, "nextDestination", o.NextDestination)
	return r
}

// PackagingInput is an edit of one packaging after its BSFF was emitted.
type PackagingInput struct {
	PackagingContent
	PreviousPackagings []string     `json:"previousPackagings,omitempty"`
	Acceptation        *Acceptation `json:"acceptation,omitempty"`
	Operation          *Operation   `json:"operation,omitempty"`
}

func (in PackagingInput) Record() edition.Record {
	r := in.PackagingContent.Record()
	edition.PutList(r, "previousPackagings", in.PreviousPackagings, edition.Scalar[string])
	putSection(r, "acceptation", in.Acceptation)
	putSection(r, "operation", in.Operation)
	return r
}

type PackagingSignatures struct {
	Acceptation *Signature `json:"acceptation,omitempty"`
	Operation   *Signature `json:"operation,omitempty"`
}

// Packaging is a stored packaging of a BSFF.
type Packaging struct {
	ID string `json:"id"`
	PackagingInput
	Signatures PackagingSignatures `json:"signatures"`
}

// IsRefused reports whether the destination refused the packaging at
// acceptation.
func (p *Packaging) IsRefused() bool {
	return p.Signatures.Acceptation != nil &&
		p.Acceptation != nil && p.Acceptation.Status != nil &&
		*p.Acceptation.Status == AcceptationRefused
}

func (p *Packaging) slot(t edition.SignatureType) **Signature {
	switch t {
	case edition.SignatureAcceptation:
		return &p.Signatures.Acceptation
	case edition.SignatureOperation:
		return &p.Signatures.Operation
	}
	return nil
}
