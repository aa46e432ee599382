package bsda

// Field is a flattened BSDA input path.
type Field string

const (
	FieldType                       Field = "type"
	FieldEmitterIsPrivateIndividual Field = "emitterIsPrivateIndividual"
	FieldEmitterCompanyName         Field = "emitterCompanyName"
	FieldEmitterCompanySiret        Field = "emitterCompanySiret"
	FieldEmitterCompanyAddress      Field = "emitterCompanyAddress"
	FieldEmitterCompanyContact      Field = "emitterCompanyContact"
	FieldEmitterCompanyPhone        Field = "emitterCompanyPhone"
	FieldEmitterCompanyMail         Field = "emitterCompanyMail"
	FieldEmitterCustomInfo          Field = "emitterCustomInfo"
	FieldEmitterPickupSiteName      Field = "emitterPickupSiteName"
	FieldEmitterPickupSiteAddress   Field = "emitterPickupSiteAddress"
	FieldEmitterPickupSiteCity      Field = "emitterPickupSiteCity"
	FieldEmitterPickupSitePostal    Field = "emitterPickupSitePostalCode"
	FieldEmitterPickupSiteInfos     Field = "emitterPickupSiteInfos"

	FieldEcoOrganismeName  Field = "ecoOrganismeName"
	FieldEcoOrganismeSiret Field = "ecoOrganismeSiret"

	FieldDestinationCompanyName                Field = "destinationCompanyName"
	FieldDestinationCompanySiret               Field = "destinationCompanySiret"
	FieldDestinationCompanyAddress             Field = "destinationCompanyAddress"
	FieldDestinationCompanyContact             Field = "destinationCompanyContact"
	FieldDestinationCompanyPhone               Field = "destinationCompanyPhone"
	FieldDestinationCompanyMail                Field = "destinationCompanyMail"
	FieldDestinationCustomInfo                 Field = "destinationCustomInfo"
	FieldDestinationCap                        Field = "destinationCap"
	FieldDestinationPlannedOperationCode       Field = "destinationPlannedOperationCode"
	FieldDestinationReceptionDate              Field = "destinationReceptionDate"
	FieldDestinationReceptionWeight            Field = "destinationReceptionWeight"
	FieldDestinationReceptionAcceptationStatus Field = "destinationReceptionAcceptationStatus"
	FieldDestinationReceptionRefusalReason     Field = "destinationReceptionRefusalReason"
	FieldDestinationOperationCode              Field = "destinationOperationCode"
	FieldDestinationOperationMode              Field = "destinationOperationMode"
	FieldDestinationOperationDescription       Field = "destinationOperationDescription"
	FieldDestinationOperationDate              Field = "destinationOperationDate"
	FieldNextDestinationCompanyName            Field = "destinationOperationNextDestinationCompanyName"
	FieldNextDestinationCompanySiret           Field = "destinationOperationNextDestinationCompanySiret"
	FieldNextDestinationCompanyVatNumber       Field = "destinationOperationNextDestinationCompanyVatNumber"
	FieldNextDestinationCompanyAddress         Field = "destinationOperationNextDestinationCompanyAddress"
	FieldNextDestinationCompanyContact         Field = "destinationOperationNextDestinationCompanyContact"
	FieldNextDestinationCompanyPhone           Field = "destinationOperationNextDestinationCompanyPhone"
	FieldNextDestinationCompanyMail            Field = "destinationOperationNextDestinationCompanyMail"
	FieldNextDestinationCap                    Field = "destinationOperationNextDestinationCap"
	FieldNextDestinationPlannedOperationCode   Field = "destinationOperationNextDestinationPlannedOperationCode"

	FieldTransporterCompanyName          Field = "transporterCompanyName"
	FieldTransporterCompanySiret         Field = "transporterCompanySiret"
	FieldTransporterCompanyAddress       Field = "transporterCompanyAddress"
	FieldTransporterCompanyContact       Field = "transporterCompanyContact"
	FieldTransporterCompanyPhone         Field = "transporterCompanyPhone"
	FieldTransporterCompanyMail          Field = "transporterCompanyMail"
	FieldTransporterCompanyVatNumber     Field = "transporterCompanyVatNumber"
	FieldTransporterCustomInfo           Field = "transporterCustomInfo"
	FieldTransporterRecepisseIsExempted  Field = "transporterRecepisseIsExempted"
	FieldTransporterRecepisseNumber      Field = "transporterRecepisseNumber"
	FieldTransporterRecepisseDepartment  Field = "transporterRecepisseDepartment"
	FieldTransporterRecepisseValidity    Field = "transporterRecepisseValidityLimit"
	FieldTransporterTransportMode        Field = "transporterTransportMode"
	FieldTransporterTransportPlates      Field = "transporterTransportPlates"
	FieldTransporterTransportTakenOverAt Field = "transporterTransportTakenOverAt"

	FieldWorkerIsDisabled                      Field = "workerIsDisabled"
	FieldWorkerCompanyName                     Field = "workerCompanyName"
	FieldWorkerCompanySiret                    Field = "workerCompanySiret"
	FieldWorkerCompanyAddress                  Field = "workerCompanyAddress"
	FieldWorkerCompanyContact                  Field = "workerCompanyContact"
	FieldWorkerCompanyPhone                    Field = "workerCompanyPhone"
	FieldWorkerCompanyMail                     Field = "workerCompanyMail"
	FieldWorkerWorkHasEmitterPaperSignature    Field = "workerWorkHasEmitterPaperSignature"
	FieldWorkerCertificationHasSubSectionFour  Field = "workerCertificationHasSubSectionFour"
	FieldWorkerCertificationHasSubSectionThree Field = "workerCertificationHasSubSectionThree"
	FieldWorkerCertificationNumber             Field = "workerCertificationCertificationNumber"
	FieldWorkerCertificationValidityLimit      Field = "workerCertificationValidityLimit"
	FieldWorkerCertificationOrganisation       Field = "workerCertificationOrganisation"

	FieldBrokerCompanyName            Field = "brokerCompanyName"
	FieldBrokerCompanySiret           Field = "brokerCompanySiret"
	FieldBrokerCompanyAddress         Field = "brokerCompanyAddress"
	FieldBrokerCompanyContact         Field = "brokerCompanyContact"
	FieldBrokerCompanyPhone           Field = "brokerCompanyPhone"
	FieldBrokerCompanyMail            Field = "brokerCompanyMail"
	FieldBrokerRecepisseNumber        Field = "brokerRecepisseNumber"
	FieldBrokerRecepisseDepartment    Field = "brokerRecepisseDepartment"
	FieldBrokerRecepisseValidityLimit Field = "brokerRecepisseValidityLimit"

	FieldWasteCode         Field = "wasteCode"
	FieldWasteAdr          Field = "wasteAdr"
	FieldWasteFamilyCode   Field = "wasteFamilyCode"
	FieldWasteMaterialName Field = "wasteMaterialName"
	FieldWasteConsistence  Field = "wasteConsistence"
	FieldWasteSealNumbers  Field = "wasteSealNumbers"
	FieldWastePop          Field = "wastePop"

	FieldPackagings       Field = "packagings"
	FieldWeightIsEstimate Field = "weightIsEstimate"
	FieldWeightValue      Field = "weightValue"

	FieldGrouping       Field = "grouping"
	FieldForwarding     Field = "forwarding"
	FieldIntermediaries Field = "intermediaries"
)
