package models

import (
	"errors"
	"time"

	"bordereau/internal/edition"
)

// Status is the workflow position of a BSDA, derived from its signatures.
type Status string

const (
	StatusInitial          Status = "INITIAL"
	StatusSignedByProducer Status = "SIGNED_BY_PRODUCER"
	StatusSignedByWorker   Status = "SIGNED_BY_WORKER"
	StatusSent             Status = "SENT"
	StatusProcessed        Status = "PROCESSED"
	StatusRefused          Status = "REFUSED"
)

// Type is the regulatory kind of movement.
const (
	TypeCollection2710   = "COLLECTION_2710"
	TypeOtherCollections = "OTHER_COLLECTIONS"
	TypeGathering        = "GATHERING"
	TypeReshipment       = "RESHIPMENT"
)

// AcceptationRefused marks a waste refused at reception.
const AcceptationRefused = "REFUSED"

// Chain is the BSDA signature hierarchy.
var Chain = edition.Chain{
	edition.SignatureEmission,
	edition.SignatureWork,
	edition.SignatureTransport,
	edition.SignatureOperation,
}

var (
	ErrAlreadySigned = errors.New("signature already captured")
	ErrStagePassed   = errors.New("a later signature has already been captured")
	ErrUnknownStage  = errors.New("signature type does not apply to a BSDA")
)

// Signature is one captured signature slot.
type Signature struct {
	Author string    `json:"author"`
	Date   time.Time `json:"date"`
}

// Signatures holds the four BSDA slots. A nil slot has not been signed.
type Signatures struct {
	Emission  *Signature `json:"emission,omitempty"`
	Work      *Signature `json:"work,omitempty"`
	Transport *Signature `json:"transport,omitempty"`
	Operation *Signature `json:"operation,omitempty"`
}

func (s *Signatures) slot(t edition.SignatureType) **Signature {
	switch t {
	case edition.SignatureEmission:
		return &s.Emission
	case edition.SignatureWork:
		return &s.Work
	case edition.SignatureTransport:
		return &s.Transport
	case edition.SignatureOperation:
		return &s.Operation
	}
	return nil
}

// Content is the editable part of a BSDA, shared by the stored document and
// its input.
type Content struct {
	Type           *string          `json:"type,omitempty"`
	Emitter        *Emitter         `json:"emitter,omitempty"`
	EcoOrganisme   *EcoOrganisme    `json:"ecoOrganisme,omitempty"`
	Destination    *Destination     `json:"destination,omitempty"`
	Transporter    *Transporter     `json:"transporter,omitempty"`
	Worker         *Worker          `json:"worker,omitempty"`
	Broker         *Broker          `json:"broker,omitempty"`
	Waste          *Waste           `json:"waste,omitempty"`
	Weight         *Weight          `json:"weight,omitempty"`
	Packagings     []Packaging      `json:"packagings,omitempty"`
	Intermediaries []ForeignCompany `json:"intermediaries,omitempty"`
}

func (c Content) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "type", c.Type)
	putSection(r, "emitter", c.Emitter)
	putSection(r, "ecoOrganisme", c.EcoOrganisme)
	putSection(r, "destination", c.Destination)
	putSection(r, "transporter", c.Transporter)
	putSection(r, "worker", c.Worker)
	putSection(r, "broker", c.Broker)
	putSection(r, "waste", c.Waste)
	putSection(r, "weight", c.Weight)
	edition.PutList(r, "packagings", c.Packagings, edition.AsRecord[Packaging])
	edition.PutList(r, "intermediaries", c.Intermediaries, edition.AsRecord[ForeignCompany])
	return r
}

// HasWorker reports whether a worker takes part and signs WORK.
func (c Content) HasWorker() bool {
	disabled := c.Worker != nil && c.Worker.IsDisabled != nil && *c.Worker.IsDisabled
	return c.Type != nil && *c.Type == TypeOtherCollections && !disabled
}

// Input is an edit as received: content plus relations by identifier.
type Input struct {
	Content
	Grouping   []string `json:"grouping,omitempty"`
	Forwarding *string  `json:"forwarding,omitempty"`
}

func (in Input) Record() edition.Record {
	r := in.Content.Record()
	edition.PutList(r, "grouping", in.Grouping, edition.Scalar[string])
	edition.Put(r, "forwarding", in.Forwarding)
	return r
}

// Ref is a resolved link to another BSDA.
type Ref struct {
	ID        string `json:"id"`
	WasteCode string `json:"wasteCode,omitempty"`
}

// Bsda is the stored document.
type Bsda struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
	Content
	Grouping   []Ref      `json:"grouping,omitempty"`
	Forwarding *Ref       `json:"forwarding,omitempty"`
	Signatures Signatures `json:"signatures"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func (b *Bsda) SignedAt(t edition.SignatureType) *time.Time {
	slot := b.Signatures.slot(t)
	if slot == nil || *slot == nil {
		return nil
	}
	return &(*slot).Date
}

// ToInput re-expresses the stored document in input shape, relations as
// identifiers, so it can be diffed against an edit.
func ToInput(b *Bsda) Input {
	in := Input{Content: b.Content}
	if b.Grouping != nil {
		in.Grouping = make([]string, len(b.Grouping))
		for i, g := range b.Grouping {
			in.Grouping[i] = g.ID
		}
	}
	if b.Forwarding != nil {
		id := b.Forwarding.ID
		in.Forwarding = &id
	}
	return in
}

// Sign fills the slot of stage once. Slots are never rewritten, and a stage
// cannot be signed after a later one.
func (b *Bsda) Sign(stage edition.SignatureType, author string, at time.Time) error {
	slot := b.Signatures.slot(stage)
	if slot == nil {
		return ErrUnknownStage
	}
	if *slot != nil {
		return ErrAlreadySigned
	}
	if !Chain.IsAwaitingSignature(stage, b) {
		return ErrStagePassed
	}
	*slot = &Signature{Author: author, Date: at}
	b.Status = b.statusAfter(stage)
	b.UpdatedAt = at
	return nil
}

func (b *Bsda) statusAfter(stage edition.SignatureType) Status {
	switch stage {
	case edition.SignatureEmission:
		return StatusSignedByProducer
	case edition.SignatureWork:
		return StatusSignedByWorker
	case edition.SignatureTransport:
		return StatusSent
	case edition.SignatureOperation:
		if r := b.receptionStatus(); r == AcceptationRefused {
			return StatusRefused
		}
		return StatusProcessed
	}
	return b.Status
}

func (b *Bsda) receptionStatus() string {
	d := b.Destination
	if d == nil || d.Reception == nil || d.Reception.AcceptationStatus == nil {
		return ""
	}
	return *d.Reception.AcceptationStatus
}
