package models

import (
	"time"

	"bordereau/internal/edition"
)

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

// ForeignCompany may be identified by a VAT number instead of a SIRET.
type ForeignCompany struct {
	Company
	VatNumber *string `json:"vatNumber,omitempty"`
}

func (c ForeignCompany) Record() edition.Record {
	r := c.Company.Record()
	edition.Put(r, "vatNumber", c.VatNumber)
	return r
}

type Emitter struct {
	Company    *Company `json:"company,omitempty"`
	CustomInfo *string  `json:"customInfo,omitempty"`
}

func (e Emitter) Record() edition.Record {
	r := edition.Record{}
	putSection(r, "company", e.Company)
	edition.Put(r, "customInfo", e.CustomInfo)
	return r
}

// Waste describes the fluid. Code is a regulatory waste code such as
// "14 06 01*".
type Waste struct {
	Code        *string `json:"code,omitempty"`
	Description *string `json:"description,omitempty"`
	Adr         *string `json:"adr,omitempty"`
}

func (w Waste) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "code", w.Code)
	edition.Put(r, "description", w.Description)
	edition.Put(r, "adr", w.Adr)
	return r
}

// Weight is in kilograms.
type Weight struct {
	Value      *float64 `json:"value,omitempty"`
	IsEstimate *bool    `json:"isEstimate,omitempty"`
}

func (w Weight) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "value", w.Value)
	edition.Put(r, "isEstimate", w.IsEstimate)
	return r
}

type Reception struct {
	Date *time.Time `json:"date,omitempty"`
}

func (rc Reception) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "date", rc.Date)
	return r
}

type Destination struct {
	Company              *Company   `json:"company,omitempty"`
	Cap                  *string    `json:"cap,omitempty"`
	PlannedOperationCode *string    `json:"plannedOperationCode,omitempty"`
	CustomInfo           *string    `json:"customInfo,omitempty"`
	Reception            *Reception `json:"reception,omitempty"`
}

func (d Destination) Record() edition.Record {
	r := edition.Record{}
	putSection(r, "company", d.Company)
	edition.Put(r, "cap", d.Cap)
	edition.Put(r, "plannedOperationCode", d.PlannedOperationCode)
	edition.Put(r, "customInfo", d.CustomInfo)
	putSection(r, "reception", d.Reception)
	return r
}

type Recepisse struct {
	IsExempted    *bool      `json:"isExempted,omitempty"`
	Number        *string    `json:"number,omitempty"`
	Department    *string    `json:"department,omitempty"`
	ValidityLimit *time.Time `json:"validityLimit,omitempty"`
}

func (rc Recepisse) Record() edition.Record {
	r := edition.Record{}
	edition.Put(r, "isExempted", rc.IsExempted)
	edition.Put(r, "number", rc.Number)
	edition.Put(r, "department", rc.Department)
	edition.Put(r, "validityLimit", rc.ValidityLimit)
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

// Transporter is one transport leg as edited. An empty ID asks for a new leg.
type Transporter struct {
	ID         string          `json:"id"`
	Company    *ForeignCompany `json:"company,omitempty"`
	CustomInfo *string         `json:"customInfo,omitempty"`
	Recepisse  *Recepisse      `json:"recepisse,omitempty"`
	Transport  *Transport      `json:"transport,omitempty"`
}

func (t Transporter) Record() edition.Record {
	r := edition.Record{"id": t.ID}
	putSection(r, "company", t.Company)
	edition.Put(r, "customInfo", t.CustomInfo)
	putSection(r, "recepisse", t.Recepisse)
	putSection(r, "transport", t.Transport)
	return r
}

// SiretOrEmpty returns the SIRET of the leg's company.
func (t Transporter) SiretOrEmpty() string {
	if t.Company == nil {
		return ""
	}
	return t.Company.Company.SiretOrEmpty()
}

func putSection[S edition.Recorder](r edition.Record, key string, s *S) {
	if s != nil {
		r[key] = (*s).Record()
	}
}
