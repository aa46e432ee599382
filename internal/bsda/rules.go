package bsda

import (
	"bordereau/internal/bsda/models"
	"bordereau/internal/edition"
)

const Kind = "bsda"

var (
	emission  = edition.SignatureEmission
	work      = edition.SignatureWork
	transport = edition.SignatureTransport
	operation = edition.SignatureOperation
)

// Policy seals every BSDA input field at one stage of models.Chain.
var Policy = edition.Policy[Field]{
	Kind:  Kind,
	Chain: models.Chain,
	Rules: edition.Table[Field]{
		FieldType:                       {Sealed: emission},
		FieldEmitterIsPrivateIndividual: {Sealed: emission},
		FieldEmitterCompanyName:         {Sealed: emission, ReadableName: "le nom de l'entreprise émettrice"},
		FieldEmitterCompanySiret:        {Sealed: emission, ReadableName: "le SIRET de l'entreprise émettrice"},
		FieldEmitterCompanyAddress:      {Sealed: emission, ReadableName: "l'adresse de l'entreprise émettrice"},
		FieldEmitterCompanyContact:      {Sealed: emission, ReadableName: "le contact de l'entreprise émettrice"},
		FieldEmitterCompanyPhone:        {Sealed: emission, ReadableName: "le téléphone de l'entreprise émettrice"},
		FieldEmitterCompanyMail:         {Sealed: emission, ReadableName: "l'email de l'entreprise émettrice"},
		FieldEmitterCustomInfo:          {Sealed: emission},
		FieldEmitterPickupSiteName:      {Sealed: emission},
		FieldEmitterPickupSiteAddress:   {Sealed: emission},
		FieldEmitterPickupSiteCity:      {Sealed: emission},
		FieldEmitterPickupSitePostal:    {Sealed: emission},
		FieldEmitterPickupSiteInfos:     {Sealed: emission},

		FieldEcoOrganismeName:  {Sealed: transport},
		FieldEcoOrganismeSiret: {Sealed: transport},

		FieldDestinationCompanyName:                {Sealed: emission, ReadableName: "le nom de l'entreprise de destination"},
		FieldDestinationCompanySiret:               {Sealed: emission, ReadableName: "le SIRET de l'entreprise de destination"},
		FieldDestinationCompanyAddress:             {Sealed: emission, ReadableName: "l'adresse de l'entreprise de destination"},
		FieldDestinationCompanyContact:             {Sealed: emission, ReadableName: "le contact de l'entreprise de destination"},
		FieldDestinationCompanyPhone:               {Sealed: emission, ReadableName: "le téléphone de l'entreprise de destination"},
		FieldDestinationCompanyMail:                {Sealed: emission, ReadableName: "l'email de l'entreprise de destination"},
		FieldDestinationCustomInfo:                 {Sealed: operation},
		FieldDestinationCap:                        {Sealed: transport, ReadableName: "le CAP du destinataire"},
		FieldDestinationPlannedOperationCode:       {Sealed: transport, ReadableName: "le code d'opération de la destination"},
		FieldDestinationReceptionDate:              {Sealed: operation},
		FieldDestinationReceptionWeight:            {Sealed: operation},
		FieldDestinationReceptionAcceptationStatus: {Sealed: operation},
		FieldDestinationReceptionRefusalReason:     {Sealed: operation},
		FieldDestinationOperationCode:              {Sealed: operation},
		FieldDestinationOperationMode:              {Sealed: operation, ReadableName: "le mode de traitement"},
		FieldDestinationOperationDescription:       {Sealed: operation},
		FieldDestinationOperationDate:              {Sealed: operation},
		FieldNextDestinationCompanyName:            {Sealed: operation, ReadableName: "le nom de l'exutoire"},
		FieldNextDestinationCompanySiret:           {Sealed: operation, ReadableName: "le SIRET de l'exutoire"},
		FieldNextDestinationCompanyVatNumber:       {Sealed: operation},
		FieldNextDestinationCompanyAddress:         {Sealed: operation, ReadableName: "l'adresse de l'exutoire"},
		FieldNextDestinationCompanyContact:         {Sealed: operation, ReadableName: "le contact de l'exutoire"},
		FieldNextDestinationCompanyPhone:           {Sealed: operation, ReadableName: "le téléphone de l'exutoire"},
		FieldNextDestinationCompanyMail:            {Sealed: operation, ReadableName: "l'email de l'exutoire"},
		FieldNextDestinationCap:                    {Sealed: operation, ReadableName: "le CAP de l'exutoire"},
		FieldNextDestinationPlannedOperationCode:   {Sealed: operation, ReadableName: "le code d'opération de l'exutoire"},

		FieldTransporterCompanyName:          {Sealed: transport},
		FieldTransporterCompanySiret:         {Sealed: transport, ReadableName: "le SIRET du transporteur"},
		FieldTransporterCompanyAddress:       {Sealed: transport, ReadableName: "l'adresse du transporteur"},
		FieldTransporterCompanyContact:       {Sealed: transport, ReadableName: "le contact du transporteur"},
		FieldTransporterCompanyPhone:         {Sealed: transport, ReadableName: "le téléphone du transporteur"},
		FieldTransporterCompanyMail:          {Sealed: transport, ReadableName: "l'email du transporteur"},
		FieldTransporterCompanyVatNumber:     {Sealed: transport, ReadableName: "le numéro de TVA du transporteur"},
		FieldTransporterCustomInfo:           {Sealed: transport},
		FieldTransporterRecepisseIsExempted:  {Sealed: transport},
		FieldTransporterRecepisseNumber:      {Sealed: transport, ReadableName: "Transporteur: le numéro de récépissé"},
		FieldTransporterRecepisseDepartment:  {Sealed: transport, ReadableName: "Transporteur: le département de récépissé"},
		FieldTransporterRecepisseValidity:    {Sealed: transport, ReadableName: "Transporteur: la date de validité du récépissé"},
		FieldTransporterTransportMode:        {Sealed: transport, ReadableName: "le mode de transport"},
		FieldTransporterTransportPlates:      {Sealed: transport},
		FieldTransporterTransportTakenOverAt: {Sealed: transport},

		FieldWorkerIsDisabled:                      {Sealed: emission},
		FieldWorkerCompanyName:                     {Sealed: emission, ReadableName: "le nom de l'entreprise de travaux"},
		FieldWorkerCompanySiret:                    {Sealed: emission, ReadableName: "le SIRET de l'entreprise de travaux"},
		FieldWorkerCompanyAddress:                  {Sealed: emission, ReadableName: "l'adresse de l'entreprise de travaux"},
		FieldWorkerCompanyContact:                  {Sealed: emission, ReadableName: "le contact de l'entreprise de travaux"},
		FieldWorkerCompanyPhone:                    {Sealed: emission, ReadableName: "le téléphone de l'entreprise de travaux"},
		FieldWorkerCompanyMail:                     {Sealed: emission, ReadableName: "l'email de l'entreprise de travaux"},
		FieldWorkerWorkHasEmitterPaperSignature:    {Sealed: work},
		FieldWorkerCertificationHasSubSectionFour:  {Sealed: work},
		FieldWorkerCertificationHasSubSectionThree: {Sealed: work},
		FieldWorkerCertificationNumber:             {Sealed: work, ReadableName: "le numéro de certification de l'entreprise de travaux"},
		FieldWorkerCertificationValidityLimit:      {Sealed: work},
		FieldWorkerCertificationOrganisation:       {Sealed: work},

		FieldBrokerCompanyName:            {Sealed: emission},
		FieldBrokerCompanySiret:           {Sealed: emission},
		FieldBrokerCompanyAddress:         {Sealed: emission},
		FieldBrokerCompanyContact:         {Sealed: emission},
		FieldBrokerCompanyPhone:           {Sealed: emission},
		FieldBrokerCompanyMail:            {Sealed: emission},
		FieldBrokerRecepisseNumber:        {Sealed: emission},
		FieldBrokerRecepisseDepartment:    {Sealed: emission},
		FieldBrokerRecepisseValidityLimit: {Sealed: emission},

		FieldWasteCode:         {Sealed: emission, ReadableName: "le code déchet"},
		FieldWasteAdr:          {Sealed: work},
		FieldWasteFamilyCode:   {Sealed: work, ReadableName: "le code famille"},
		FieldWasteMaterialName: {Sealed: work},
		FieldWasteConsistence:  {Sealed: work, ReadableName: "la consistance"},
		FieldWasteSealNumbers:  {Sealed: work},
		FieldWastePop:          {Sealed: work},

		FieldPackagings:       {Sealed: work, ReadableName: "le conditionnement"},
		FieldWeightIsEstimate: {Sealed: work},
		FieldWeightValue:      {Sealed: work},

		FieldGrouping:       {Sealed: emission},
		FieldForwarding:     {Sealed: emission},
		FieldIntermediaries: {Sealed: transport},
	},
}
