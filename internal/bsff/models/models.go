package models

import (
	"errors"
	"time"

	"bordereau/internal/edition"
)

// Status is the workflow position of a BSFF.
type Status string

const (
	StatusInitial          Status = "INITIAL"
	StatusSignedByEmitter  Status = "SIGNED_BY_EMITTER"
	StatusSent             Status = "SENT"
	StatusReceived         Status = "RECEIVED"
	StatusAccepted         Status = "ACCEPTED"
	StatusRefused          Status = "REFUSED"
	StatusPartiallyRefused Status = "PARTIALLY_REFUSED"
	StatusProcessed        Status = "PROCESSED"
)

// BSFF types.
const (
	TypeCollectePetitesQuantites = "COLLECTE_PETITES_QUANTITES"
	TypeTracerFluide             = "TRACER_FLUIDE"
	TypeGroupement               = "GROUPEMENT"
	TypeReconditionnement        = "RECONDITIONNEMENT"
	TypeReexpedition             = "REEXPEDITION"
)

// Chain is the BSFF signature hierarchy. TRANSPORT is signed once per
// transporter leg, in order.
var Chain = edition.Chain{
	edition.SignatureEmission,
	edition.SignatureTransport,
	edition.SignatureReception,
}

var (
	ErrAlreadySigned     = errors.New("signature already captured")
	ErrStagePassed       = errors.New("a later signature has already been captured")
	ErrUnknownStage      = errors.New("signature type does not apply here")
	ErrNoTransporter     = errors.New("no transporter to sign the transport")
	ErrNotReceived       = errors.New("the bsff has not been received")
	ErrPackagingNotFound = errors.New("packaging not found")
	ErrPackagingRefused  = errors.New("packaging was refused at acceptation")
)

type Signature struct {
	Author string    `json:"author"`
	Date   time.Time `json:"date"`
}

// Signatures holds the document level slots. Transport signatures live on
// each leg.
type Signatures struct {
	Emission  *Signature `json:"emission,omitempty"`
	Reception *Signature `json:"reception,omitempty"`
}

// Content is the editable part of a BSFF besides its transporters and
// packagings.
type Content struct {
	Type               *string      `json:"type,omitempty"`
	Emitter            *Emitter     `json:"emitter,omitempty"`
	Waste              *Waste       `json:"waste,omitempty"`
	Weight             *Weight      `json:"weight,omitempty"`
	Destination        *Destination `json:"destination,omitempty"`
	FicheInterventions []string     `json:"ficheInterventions,omitempty"`
	Forwarding         []string     `json:"forwarding,omitempty"`
	Grouping           []string     `json:"grouping,omitempty"`
	Repackaging        []string     `json:"repackaging,omitempty"`
}

func (c Content) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "type", c.Type)
	putSection(r, "emitter", c.Emitter)
	putSection(r, "waste", c.Waste)
	putSection(r, "weight", c.Weight)
	putSection(r, "destination", c.Destination)
	edition.PutList(r, "ficheInterventions", c.FicheInterventions, edition.Scalar[string])
	edition.PutList(r, "forwarding", c.Forwarding, edition.Scalar[string])
	edition.PutList(r, "grouping", c.Grouping, edition.Scalar[string])
	edition.PutList(r, "repackaging", c.Repackaging, edition.Scalar[string])
	return r
}

// Input is a BSFF edit as received.
type Input struct {
	Content
	Transporters []Transporter      `json:"transporters,omitempty"`
	Packagings   []PackagingContent `json:"packagings,omitempty"`
}

func (in Input) Record() edition.Record {
	r := in.Content.Record()
	edition.PutList(r, "transporters", in.Transporters, edition.AsRecord[Transporter])
	edition.PutList(r, "packagings", in.Packagings, edition.AsRecord[PackagingContent])
	return r
}

// Leg is a stored transporter with its position and TRANSPORT signature.
type Leg struct {
	Transporter
	Number    int        `json:"number"`
	Signature *Signature `json:"signature,omitempty"`
}

type Bsff struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
	Content
	Transporters []Leg       `json:"transporters,omitempty"`
	Packagings   []Packaging `json:"packagings,omitempty"`
	Signatures   Signatures  `json:"signatures"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// SignedAt reports TRANSPORT as signed once the first leg has signed.
func (b *Bsff) SignedAt(t edition.SignatureType) *time.Time {
	var s *Signature
	switch t {
	case edition.SignatureEmission:
		s = b.Signatures.Emission
	case edition.SignatureTransport:
		if len(b.Transporters) > 0 {
			s = b.Transporters[0].Signature
		}
	case edition.SignatureReception:
		s = b.Signatures.Reception
	}
	if s == nil {
		return nil
	}
	return &s.Date
}

// ToInput re-expresses the stored document in input shape.
func ToInput(b *Bsff) Input {
	in := Input{Content: b.Content}
	if b.Transporters != nil {
		in.Transporters = make([]Transporter, len(b.Transporters))
		for i, leg := range b.Transporters {
			in.Transporters[i] = leg.Transporter
		}
	}
	if b.Packagings != nil {
		in.Packagings = make([]PackagingContent, len(b.Packagings))
		for i, p := range b.Packagings {
			in.Packagings[i] = p.PackagingContent
		}
	}
	return in
}

// Packaging returns the packaging with the given id.
func (b *Bsff) Packaging(id string) (*Packaging, bool) {
	for i := range b.Packagings {
		if b.Packagings[i].ID == id {
			return &b.Packagings[i], true
		}
	}
	return nil, false
}

// PackagingSignatures resolves the PackagingChain of p. Its EMISSION is the
// BSFF's, and counts as signed once any BSFF stage is, so a skipped emission
// still seals the packaging.
func (b *Bsff) PackagingSignatures(p *Packaging) edition.Signatures {
	at := func(s *Signature) *time.Time {
		if s == nil {
			return nil
		}
		return &s.Date
	}
	var emitted *time.Time
	for _, stage := range Chain {
		if emitted = b.SignedAt(stage); emitted != nil {
			break
		}
	}
	return edition.Signatures{
		edition.SignatureEmission:    emitted,
		edition.SignatureAcceptation: at(p.Signatures.Acceptation),
		edition.SignatureOperation:   at(p.Signatures.Operation),
	}
}

// Sign captures a document level signature. TRANSPORT signs the first leg
// that has not signed yet.
func (b *Bsff) Sign(stage edition.SignatureType, author string, at time.Time) error {
	sig := &Signature{Author: author, Date: at}
	switch stage {
	case edition.SignatureEmission, edition.SignatureReception:
		slot := &b.Signatures.Emission
		if stage == edition.SignatureReception {
			slot = &b.Signatures.Reception
		}
		if *slot != nil {
			return ErrAlreadySigned
		}
		if !Chain.IsAwaitingSignature(stage, b) {
			return ErrStagePassed
		}
		*slot = sig
	case edition.SignatureTransport:
		if b.Signatures.Reception != nil {
			return ErrStagePassed
		}
		if len(b.Transporters) == 0 {
			return ErrNoTransporter
		}
		leg := b.nextLeg()
		if leg == nil {
			return ErrAlreadySigned
		}
		leg.Signature = sig
	default:
		return ErrUnknownStage
	}
	b.Status = b.status()
	b.UpdatedAt = at
	return nil
}

func (b *Bsff) nextLeg() *Leg {
	for i := range b.Transporters {
		if b.Transporters[i].Signature == nil {
			return &b.Transporters[i]
		}
	}
	return nil
}

// SignPackaging captures the ACCEPTATION or OPERATION signature of one
// packaging once the BSFF has been received.
func (b *Bsff) SignPackaging(id string, stage edition.SignatureType, author string, at time.Time) error {
	p, ok := b.Packaging(id)
	if !ok {
		return ErrPackagingNotFound
	}
	slot := p.slot(stage)
	if slot == nil {
		return ErrUnknownStage
	}
	if b.Signatures.Reception == nil {
		return ErrNotReceived
	}
	if *slot != nil {
		return ErrAlreadySigned
	}
	if !PackagingChain.IsAwaitingSignature(stage, b.PackagingSignatures(p)) {
		return ErrStagePassed
	}
	if stage == edition.SignatureOperation && p.IsRefused() {
		return ErrPackagingRefused
	}
	*slot = &Signature{Author: author, Date: at}
	b.Status = b.status()
	b.UpdatedAt = at
	return nil
}

// status derives the workflow position from every captured signature.
func (b *Bsff) status() Status {
	if b.Signatures.Reception == nil {
		switch {
		case b.SignedAt(edition.SignatureTransport) != nil:
			return StatusSent
		case b.Signatures.Emission != nil:
			return StatusSignedByEmitter
		default:
			return StatusInitial
		}
	}
	if len(b.Packagings) == 0 {
		return StatusReceived
	}

	var accepted, refused, processed int
	for i := range b.Packagings {
		p := &b.Packagings[i]
		if p.Signatures.Acceptation == nil {
			return StatusReceived
		}
		if p.IsRefused() {
			refused++
			continue
		}
		accepted++
		if p.Signatures.Operation != nil {
			processed++
		}
	}
	switch {
	case accepted == 0:
		return StatusRefused
	case processed == accepted:
		return StatusProcessed
	case refused > 0:
		return StatusPartiallyRefused
	default:
		return StatusAccepted
	}
}
