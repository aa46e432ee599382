package models

import (
	"time"

	"bordereau/internal/edition"
)

// Company identifies an establishment taking part in the movement.
type Company struct {
	Name    *string `json:"name,omitempty"`
	Siret   *string `json:"siret,omitempty"`
	Address *string `json:"address,omitempty"`
	Contact *string `json:"contact,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Mail    *string `json:"mail,omitempty"`
}

func (c Company) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "name", c.Name)
	edition.Put(r, "siret", c.Siret)
	edition.Put(r, "address", c.Address)
	edition.Put(r, "contact", c.Contact)
	edition.Put(r, "phone", c.Phone)
	edition.Put(r, "mail", c.Mail)
	return r
}

// SiretOrEmpty returns the company SIRET, or "" when unknown.
func (c *Company) SiretOrEmpty() string {
	if c == nil || c.Siret == nil {
		return ""
	}
	return *c.Siret
}

// ForeignCompany is a Company that may be identified by a VAT number.
type ForeignCompany struct {
	Company
	VatNumber *string `json:"vatNumber,omitempty"`
}

func (c ForeignCompany) Record() edition.Record {
	r := c.Company.Record()
	edition.Put(r, "vatNumber", c.VatNumber)
	return r
}

type PickupSite struct {
	Name       *string `json:"name,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Infos      *string `json:"infos,omitempty"`
}

func (p PickupSite) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "name", p.Name)
	edition.Put(r, "address", p.Address)
	edition.Put(r, "city", p.City)
	edition.Put(r, "postalCode", p.PostalCode)
	edition.Put(r, "infos", p.Infos)
	return r
}

type Emitter struct {
	IsPrivateIndividual *bool       `json:"isPrivateIndividual,omitempty"`
	Company             *Company    `json:"company,omitempty"`
	CustomInfo          *string     `json:"customInfo,omitempty"`
	PickupSite          *PickupSite `json:"pickupSite,omitempty"`
}

func (e Emitter) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "isPrivateIndividual", e.IsPrivateIndividual)
	putSection(r, "company", e.Company)
	edition.Put(r, "customInfo", e.CustomInfo)
	putSection(r, "pickupSite", e.PickupSite)
	return r
}

type EcoOrganisme struct {
	Name  *string `json:"name,omitempty"`
	Siret *string `json:"siret,omitempty"`
}

func (e EcoOrganisme) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "name", e.Name)
	edition.Put(r, "siret", e.Siret)
	return r
}

type Reception struct {
	Date              *time.Time `json:"date,omitempty"`
	Weight            *float64   `json:"weight,omitempty"`
	AcceptationStatus *string    `json:"acceptationStatus,omitempty"`
	RefusalReason     *string    `json:"refusalReason,omitempty"`
}

func (rc Reception) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "date", rc.Date)
	edition.Put(r, "weight", rc.Weight)
	edition.Put(r, "acceptationStatus", rc.AcceptationStatus)
	edition.Put(r, "refusalReason", rc.RefusalReason)
	return r
}

// NextDestination is the final facility when the destination only groups or
// transits the waste.
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
	Code            *string          `json:"code,omitempty"`
	Mode            *string          `json:"mode,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Date            *time.Time       `json:"date,omitempty"`
	NextDestination *NextDestination `json:"nextDestination,omitempty"`
}

func (o Operation) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "code", o.Code)
	edition.Put(r, "mode", o.Mode)
	edition.Put(r, "description", o.Description)
	edition.Put(r, "date", o.Date)
	putSection(r, "nextDestination", o.NextDestination)
	return r
}

type Destination struct {
	Company              *Company   `json:"company,omitempty"`
	Cap                  *string    `json:"cap,omitempty"`
	PlannedOperationCode *string    `json:"plannedOperationCode,omitempty"`
	CustomInfo           *string    `json:"customInfo,omitempty"`
	Reception            *Reception `json:"reception,omitempty"`
	Operation            *Operation `json:"operation,omitempty"`
}

func (d Destination) Record() edition.Record {
	r := edition.Record{}
	putSection(r, "company", d.Company)
	edition.Put(r, "cap", d.Cap)
	edition.Put(r, "plannedOperationCode", d.PlannedOperationCode)
	edition.Put(r, "customInfo", d.CustomInfo)
	putSection(r, "reception", d.Reception)
	putSection(r, "operation", d.Operation)
	return r
}

// NextDestinationSiret returns the SIRET of the next destination, or "".
func (d *Destination) NextDestinationSiret() string {
	if d == nil || d.Operation == nil || d.Operation.NextDestination == nil || d.Operation.NextDestination.Company == nil {
		return ""
	}
	return d.Operation.NextDestination.Company.SiretOrEmpty()
}

type Recepisse struct {
	Number        *string    `json:"number,omitempty"`
	Department    *string    `json:"department,omitempty"`
	ValidityLimit *time.Time `json:"validityLimit,omitempty"`
}

func (rc Recepisse) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "number", rc.Number)
	edition.Put(r, "department", rc.Department)
	edition.Put(r, "validityLimit", rc.ValidityLimit)
	return r
}

type TransporterRecepisse struct {
	IsExempted *bool `json:"isExempted,omitempty"`
	Recepisse
}

func (rc TransporterRecepisse) Record() edition.Record {
	r := rc.Recepisse.Record()
	edition.Put(r, "isExempted", rc.IsExempted)
	return r
}

type Transport struct {
	Mode        *string    `json:"mode,omitempty"`
	Plates      []string   `json:"plates,omitempty"`
	TakenOverAt *time.Time `json:"takenOverAt,omitempty"`
}

func (t Transport) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "mode", t.Mode)
	edition.PutList(r, "plates", t.Plates, edition.Scalar[string])
	edition.Put(r, "takenOverAt", t.TakenOverAt)
	return r
}

type Transporter struct {
	Company    *ForeignCompany       `json:"company,omitempty"`
	CustomInfo *string               `json:"customInfo,omitempty"`
	Recepisse  *TransporterRecepisse `json:"recepisse,omitempty"`
	Transport  *Transport            `json:"transport,omitempty"`
}

func (t Transporter) Record() edition.Record {
	r := edition.Record{}
	putSection(r, "company", t.Company)
	edition.Put(r, "customInfo", t.CustomInfo)
	putSection(r, "recepisse", t.Recepisse)
	putSection(r, "transport", t.Transport)
	return r
}

type Work struct {
	HasEmitterPaperSignature *bool `json:"hasEmitterPaperSignature,omitempty"`
}

func (w Work) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "hasEmitterPaperSignature", w.HasEmitterPaperSignature)
	return r
}

type Certification struct {
	HasSubSectionFour   *bool      `json:"hasSubSectionFour,omitempty"`
	HasSubSectionThree  *bool      `json:"hasSubSectionThree,omitempty"`
	CertificationNumber *string    `json:"certificationNumber,omitempty"`
	ValidityLimit       *time.Time `json:"validityLimit,omitempty"`
	Organisation        *string    `json:"organisation,omitempty"`
}

func (c Certification) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "hasSubSectionFour", c.HasSubSectionFour)
	edition.Put(r, "hasSubSectionThree", c.HasSubSectionThree)
	edition.Put(r, "certificationNumber", c.CertificationNumber)
	edition.Put(r, "validityLimit", c.ValidityLimit)
	edition.Put(r, "organisation", c.Organisation)
	return r
}

// Worker is the asbestos removal company.
type Worker struct {
	IsDisabled    *bool          `json:"isDisabled,omitempty"`
	Company       *Company       `json:"company,omitempty"`
	Work          *Work          `json:"work,omitempty"`
	Certification *Certification `json:"certification,omitempty"`
}

func (w Worker) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "isDisabled", w.IsDisabled)
	putSection(r, "company", w.Company)
	putSection(r, "work", w.Work)
	putSection(r, "certification", w.Certification)
	return r
}

type Broker struct {
	Company   *Company   `json:"company,omitempty"`
	Recepisse *Recepisse `json:"recepisse,omitempty"`
}

func (b Broker) Record() edition.Record {
	r := edition.Record{}
	putSection(r, "company", b.Company)
	putSection(r, "recepisse", b.Recepisse)
	return r
}

type Waste struct {
	Code         *string  `json:"code,omitempty"`
	Adr          *string  `json:"adr,omitempty"`
	FamilyCode   *string  `json:"familyCode,omitempty"`
	MaterialName *string  `json:"materialName,omitempty"`
	Consistence  *string  `json:"consistence,omitempty"`
	SealNumbers  []string `json:"sealNumbers,omitempty"`
	Pop          *bool    `json:"pop,omitempty"`
}

func (w Waste) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "code", w.Code)
	edition.Put(r, "adr", w.Adr)
	edition.Put(r, "familyCode", w.FamilyCode)
	edition.Put(r, "materialName", w.MaterialName)
	edition.Put(r, "consistence", w.Consistence)
	edition.PutList(r, "sealNumbers", w.SealNumbers, edition.Scalar[string])
	edition.Put(r, "pop", w.Pop)
	return r
}

type Weight struct {
	IsEstimate *bool    `json:"isEstimate,omitempty"`
	Value      *float64 `json:"value,omitempty"`
}

func (w Weight) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "isEstimate", w.IsEstimate)
	edition.Put(r, "value", w.Value)
	return r
}

type Packaging struct {
	Type     string `json:"type"`
	Other    string `json:"other,omitempty"`
	Quantity int    `json:"quantity"`
}

func (p Packaging) Record() edition.Record {
	return edition.Record{
		"type":     p.Type,
		"other":    p.Other,
		"quantity": p.Quantity,
	}
}

func putSection[S edition.Recorder](r edition.Record, key string, s *S) {
	if s != nil {
		r[key] = (*s).Record()
	}
}
