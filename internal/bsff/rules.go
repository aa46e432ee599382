package bsff

import (
	"bordereau/internal/bsff/models"
	"bordereau/internal/edition"
)

const (
	Kind          = "bsff"
	PackagingKind = "bsff_packaging"
)

var (
	emission    = edition.SignatureEmission
	reception   = edition.SignatureReception
	acceptation = edition.SignatureAcceptation
	operation   = edition.SignatureOperation
)

// Policy seals every BSFF input field at one stage of models.Chain. Fields
// sealed at EMISSION stay open to the emitter until TRANSPORT (see
// BypassFor). Destination contact details are sealed at RECEPTION, the last
// stage of the chain. This is stricter than the back office, which leaves
// them open until OPERATION: the packaging operation is signed on the
// packaging, so RECEPTION is the last BSFF-level signature.
var Policy = edition.Policy[Field]{
	Kind:  Kind,
	Chain: models.Chain,
	Rules: edition.Table[Field]{
		FieldType:                            {Sealed: emission, ReadableName: "le type de bordereau"},
		FieldEmitterCompanyName:              {Sealed: emission, ReadableName: "la raison sociale de l'émetteur"},
		FieldEmitterCompanySiret:             {Sealed: emission, ReadableName: "le N°SIRET de l'émetteur"},
		FieldEmitterCompanyAddress:           {Sealed: emission, ReadableName: "l'adresse de l'émetteur"},
		FieldEmitterCompanyContact:           {Sealed: emission, ReadableName: "la personne à contacter chez l'émetteur"},
		FieldEmitterCompanyPhone:             {Sealed: emission, ReadableName: "le N° de téléphone de l'émetteur"},
		FieldEmitterCompanyMail:              {Sealed: emission, ReadableName: "l'adresse e-mail de l'émetteur"},
		FieldEmitterCustomInfo:               {Sealed: emission, ReadableName: "le champ libre de l'émetteur"},
		FieldWasteCode:                       {Sealed: emission, ReadableName: "le code déchet"},
		FieldWasteDescription:                {Sealed: emission, ReadableName: "la description du déchet"},
		FieldWasteAdr:                        {Sealed: emission, ReadableName: "l'ADR"},
		FieldWeightValue:                     {Sealed: emission, ReadableName: "la quantité totale"},
		FieldWeightIsEstimate:                {Sealed: emission, ReadableName: "le champ estimé ou non"},
		FieldDestinationCompanyName:          {Sealed: emission, ReadableName: "la raison sociale de l'installation de destination"},
		FieldDestinationCompanySiret:         {Sealed: emission, ReadableName: "le N°SIRET de l'installation de destination"},
		FieldDestinationCompanyAddress:       {Sealed: emission, ReadableName: "l'adresse de l'installation de destination"},
		FieldDestinationCompanyContact:       {Sealed: reception, ReadableName: "la personne à contacter de l'installation de destination"},
		FieldDestinationCompanyPhone:         {Sealed: reception, ReadableName: "le N° de téléphone de l'installation de destination"},
		FieldDestinationCompanyMail:          {Sealed: reception, ReadableName: "l'adresse e-mail de l'installation de destination"},
		FieldDestinationCap:                  {Sealed: emission, ReadableName: "le CAP de l'installation de destination"},
		FieldDestinationPlannedOperationCode: {Sealed: emission, ReadableName: "le code d'opération prévu"},
		FieldDestinationCustomInfo:           {Sealed: reception, ReadableName: "le champ libre de l'installation de destination"},
		FieldDestinationReceptionDate:        {Sealed: reception, ReadableName: "la date de la réception"},
		FieldFicheInterventions:              {Sealed: emission, ReadableName: "la liste des fiches d'intervention"},
		FieldForwarding:                      {Sealed: emission, ReadableName: "la liste des contenants à réexpedier"},
		FieldGrouping:                        {Sealed: emission, ReadableName: "la liste des contenants à grouper"},
		FieldRepackaging:                     {Sealed: emission, ReadableName: "la liste des contenants à regrouper"},
		FieldTransporters:                    {Sealed: reception, ReadableName: "la liste des transporteurs"},
		FieldPackagings:                      {Sealed: emission, ReadableName: "la liste des contenants"},
	},
}

// PackagingPolicy governs edits of one packaging after emission.
var PackagingPolicy = edition.Policy[PackagingField]{
	Kind:  PackagingKind,
	Chain: models.PackagingChain,
	Rules: edition.Table[PackagingField]{
		PackagingFieldType:               {Sealed: emission, ReadableName: "le type de contenant"},
		PackagingFieldOther:              {Sealed: emission},
		PackagingFieldVolume:             {Sealed: emission, ReadableName: "le volume du contenant"},
		PackagingFieldWeight:             {Sealed: emission, ReadableName: "la masse du contenu"},
		PackagingFieldNumero:             {Sealed: emission, ReadableName: "le numéro de contenant"},
		PackagingFieldPreviousPackagings: {Sealed: emission},

		PackagingFieldAcceptationDate:             {Sealed: acceptation, ReadableName: "la date d'acceptation"},
		PackagingFieldAcceptationStatus:           {Sealed: acceptation, ReadableName: "le statut d'acceptation"},
		PackagingFieldAcceptationRefusalReason:    {Sealed: acceptation, ReadableName: "la raison du refus"},
		PackagingFieldAcceptationWeight:           {Sealed: acceptation, ReadableName: "la quantité de fluide acceptée"},
		PackagingFieldAcceptationWasteCode:        {Sealed: acceptation, ReadableName: "le code déchet après analyse"},
		PackagingFieldAcceptationWasteDescription: {Sealed: acceptation, ReadableName: "la description du déchet après analyse"},

		PackagingFieldOperationDate:                 {Sealed: operation, ReadableName: "la date de l'opération"},
		PackagingFieldOperationCode:                 {Sealed: operation, ReadableName: "le code de l'opération"},
		PackagingFieldOperationMode:                 {Sealed: operation, ReadableName: "le mode de traitement"},
		PackagingFieldOperationDescription:          {Sealed: operation, ReadableName: "la description de l'opération"},
		PackagingFieldOperationNoTraceability:       {Sealed: operation, ReadableName: "la rupture de traçabilité"},
		PackagingFieldNextDestinationCap:            {Sealed: operation, ReadableName: "le CAP de la destination ultérieure"},
		PackagingFieldNextDestinationPlannedCode:    {Sealed: operation, ReadableName: "le code d'opération prévu de la destination ultérieure"},
		PackagingFieldNextDestinationCompanyName:    {Sealed: operation, ReadableName: "la raison sociale de la destination ultérieure"},
		PackagingFieldNextDestinationCompanySiret:   {Sealed: operation, ReadableName: "le N°SIRET de la destination ultérieure"},
		PackagingFieldNextDestinationCompanyVat:     {Sealed: operation, ReadableName: "le numéro de TVA de la destination ultérieure"},
		PackagingFieldNextDestinationCompanyAddress: {Sealed: operation, ReadableName: "l'adresse de la destination ultérieure"},
		PackagingFieldNextDestinationCompanyContact: {Sealed: operation, ReadableName: "la personne à contacter de la destination ultérieure"},
		PackagingFieldNextDestinationCompanyPhone:   {Sealed: operation, ReadableName: "le N° de téléphone de la destination ultérieure"},
		PackagingFieldNextDestinationCompanyMail:    {Sealed: operation, ReadableName: "l'adresse e-mail de la destination ultérieure"},
	},
}

// transporterFields names the fields of one transporter leg in violation
// messages. Keys are leg paths prefixed with "transporter".
var transporterFields = map[string]string{
	"transporterCompanyName":            "la raison sociale du transporteur",
	"transporterCompanySiret":           "le N°SIRET du transporteur",
	"transporterCompanyAddress":         "l'adresse du transporteur",
	"transporterCompanyContact":         "la personne à contacter du transporteur",
	"transporterCompanyPhone":           "le N° de téléphone du transporteur",
	"transporterCompanyMail":            "l'adresse e-mail du transporteur",
	"transporterCompanyVatNumber":       "le numéro de TVA du transporteur",
	"transporterCustomInfo":             "le champ libre du transporteur",
	"transporterRecepisseIsExempted":    "l'exemption de récépissé du transporteur",
	"transporterRecepisseNumber":        "le numéro de récépissé du transporteur",
	"transporterRecepisseDepartment":    "le département de récépissé du transporteur",
	"transporterRecepisseValidityLimit": "la date de validité du récépissé du transporteur",
	"transporterTransportMode":          "le mode de transport",
	"transporterTransportPlates":        "l'immatriculation du transporteur",
	"transporterTransportTakenOverAt":   "la date d'enlèvement",
}
