package bsff

// Field is a flattened BSFF input path.
type Field string

const (
	FieldType                            Field = "type"
	FieldEmitterCompanyName              Field = "emitterCompanyName"
	FieldEmitterCompanySiret             Field = "emitterCompanySiret"
	FieldEmitterCompanyAddress           Field = "emitterCompanyAddress"
	FieldEmitterCompanyContact           Field = "emitterCompanyContact"
	FieldEmitterCompanyPhone             Field = "emitterCompanyPhone"
	FieldEmitterCompanyMail              Field = "emitterCompanyMail"
	FieldEmitterCustomInfo               Field = "emitterCustomInfo"
	FieldWasteCode                       Field = "wasteCode"
	FieldWasteDescription                Field = "wasteDescription"
	FieldWasteAdr                        Field = "wasteAdr"
	FieldWeightValue                     Field = "weightValue"
	FieldWeightIsEstimate                Field = "weightIsEstimate"
	FieldDestinationCompanyName          Field = "destinationCompanyName"
	FieldDestinationCompanySiret         Field = "destinationCompanySiret"
	FieldDestinationCompanyAddress       Field = "destinationCompanyAddress"
	FieldDestinationCompanyContact       Field = "destinationCompanyContact"
	FieldDestinationCompanyPhone         Field = "destinationCompanyPhone"
	FieldDestinationCompanyMail          Field = "destinationCompanyMail"
	FieldDestinationCap                  Field = "destinationCap"
	FieldDestinationPlannedOperationCode Field = "destinationPlannedOperationCode"
	FieldDestinationCustomInfo           Field = "destinationCustomInfo"
	FieldDestinationReceptionDate        Field = "destinationReceptionDate"
	FieldFicheInterventions              Field = "ficheInterventions"
	FieldForwarding                      Field = "forwarding"
	FieldGrouping                        Field = "grouping"
	FieldRepackaging                     Field = "repackaging"
	FieldTransporters                    Field = "transporters"
	FieldPackagings                      Field = "packagings"
)

// PackagingField is a flattened BSFF packaging input path.
type PackagingField string

const (
	PackagingFieldType               PackagingField = "type"
	PackagingFieldOther              PackagingField = "other"
	PackagingFieldVolume             PackagingField = "volume"
	PackagingFieldWeight             PackagingField = "weight"
	PackagingFieldNumero             PackagingField = "numero"
	PackagingFieldPreviousPackagings PackagingField = "previousPackagings"

	PackagingFieldAcceptationDate             PackagingField = "acceptationDate"
	PackagingFieldAcceptationStatus           PackagingField = "acceptationStatus"
	PackagingFieldAcceptationRefusalReason    PackagingField = "acceptationRefusalReason"
	PackagingFieldAcceptationWeight           PackagingField = "acceptationWeight"
	PackagingFieldAcceptationWasteCode        PackagingField = "acceptationWasteCode"
	PackagingFieldAcceptationWasteDescription PackagingField = "acceptationWasteDescription"

	PackagingFieldOperationDate                 PackagingField = "operationDate"
	PackagingFieldOperationCode                 PackagingField = "operationCode"
	PackagingFieldOperationMode                 PackagingField = "operationMode"
	PackagingFieldOperationDescription          PackagingField = "operationDescription"
	PackagingFieldOperationNoTraceability       PackagingField = "operationNoTraceability"
	PackagingFieldNextDestinationCap            PackagingField = "operationNextDestinationCap"
	PackagingFieldNextDestinationPlannedCode    PackagingField = "operationNextDestinationPlannedOperationCode"
	PackagingFieldNextDestinationCompanyName    PackagingField = "operationNextDestinationCompanyName"
	PackagingFieldNextDestinationCompanySiret   PackagingField = "operationNextDestinationCompanySiret"
	PackagingFieldNextDestinationCompanyVat     PackagingField = "operationNextDestinationCompanyVatNumber"
	PackagingFieldNextDestinationCompanyAddress PackagingField = "operationNextDestinationCompanyAddress"
	PackagingFieldNextDestinationCompanyContact PackagingField = "operationNextDestinationCompanyContact"
	PackagingFieldNextDestinationCompanyPhone   PackagingField = "operationNextDestinationCompanyPhone"
	PackagingFieldNextDestinationCompanyMail    PackagingField = "operationNextDestinationCompanyMail"
)
