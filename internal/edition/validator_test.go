package edition

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "bordereau/pkg/domain-errors"
)

type testField string

const (
	fieldEmitterCompanyName   testField = "emitterCompanyName"
	fieldWasteCode            testField = "wasteCode"
	fieldWorkerWorkHasPaper   testField = "workerWorkHasEmitterPaperSignature"
	fieldWasteFamilyCode      testField = "wasteFamilyCode"
	fieldTransporterPlates    testField = "transporterTransportPlates"
	fieldDestinationReception testField = "destinationReceptionWeight"
)

var testPolicy = Policy[testField]{
	Kind:  "test",
	Chain: workflow,
	Rules: Table[testField]{
		fieldEmitterCompanyName:   {Sealed: SignatureEmission, ReadableName: "le nom de l'entreprise émettrice"},
		fieldWasteCode:            {Sealed: SignatureEmission},
		fieldWorkerWorkHasPaper:   {Sealed: SignatureWork},
		fieldWasteFamilyCode:      {Sealed: SignatureWork},
		fieldTransporterPlates:    {Sealed: SignatureTransport},
		fieldDestinationReception: {Sealed: SignatureOperation},
	},
}

func current() Record {
	return Record{
		"emitter": Record{"company": Record{"name": "ACME"}},
		"waste":   Record{"code": "06 07 01*", "familyCode": "1"},
		"worker":  Record{"work": Record{"hasEmitterPaperSignature": false}},
		"transporter": Record{"transport": Record{
			"plates": []any{"AB-123-CD"},
		}},
		"destination": Record{"reception": Record{"weight": 1.2}},
	}
}

type CheckSuite struct {
	suite.Suite
}

func TestCheckSuite(t *testing.T) {
	suite.Run(t, new(CheckSuite))
}

func (s *CheckSuite) sealedFields(err error) []string {
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeSealedFields))
	sfe, ok := AsSealedFields(err)
	s.Require().True(ok)
	return sfe.Fields()
}

func (s *CheckSuite) TestPolicyIsValid() {
	s.NoError(testPolicy.Validate())

	bad := Policy[testField]{Kind: "bad", Chain: Chain{SignatureEmission}, Rules: Table[testField]{
		fieldWasteCode: {Sealed: SignatureReception},
	}}
	s.Error(bad.Validate())
	s.Error(Policy[testField]{Kind: "empty"}.Validate())
	s.Error(Policy[testField]{Kind: "dup", Chain: Chain{SignatureEmission, SignatureEmission}}.Validate())
}

func (s *CheckSuite) TestInitialDocumentIsFullyEditable() {
	changes, err := Check(testPolicy, Request{
		Signatures: signedAt(),
		Current:    current(),
		Proposed: Record{
			"emitter":     Record{"company": Record{"name": "ACME 2"}},
			"destination": Record{"reception": Record{"weight": 3.0}},
		},
	})

	s.Require().NoError(err)
	s.Equal([]string{"destinationReceptionWeight", "emitterCompanyName"}, changes.Fields)
}

func (s *CheckSuite) TestEmissionSigned() {
	doc := signedAt(SignatureEmission)

	s.Run("field sealed by emission is rejected", func() {
		_, err := Check(testPolicy, Request{
			Signatures: doc,
			Current:    current(),
			Proposed:   Record{"emitter": Record{"company": Record{"name": "ACME 2"}}},
		})
		s.Equal([]string{"emitterCompanyName"}, s.sealedFields(err))
		s.Contains(err.Error(), "Des champs ont été verrouillés via signature et ne peuvent plus être modifiés : emitterCompanyName")
	})

	s.Run("field sealed by work is still editable", func() {
		changes, err := Check(testPolicy, Request{
			Signatures: doc,
			Current:    current(),
			Proposed:   Record{"waste": Record{"familyCode": "2"}},
		})
		s.Require().NoError(err)
		s.Equal([]string{"wasteFamilyCode"}, changes.Fields)
		s.Equal(Record{"waste": Record{"familyCode": "2"}}, changes.Diff)
	})

	s.Run("readable name is used in the message", func() {
		_, err := Check(testPolicy, Request{
			Signatures: doc,
			Current:    current(),
			Proposed:   Record{"emitter": Record{"company": Record{"name": "ACME 2"}}},
		})
		sfe, ok := AsSealedFields(err)
		s.Require().True(ok)
		s.Equal([]string{"Le nom de l'entreprise émettrice a été verrouillé via signature et ne peut pas être modifié."}, sfe.Messages())
	})
}

func (s *CheckSuite) TestViolationsAreAggregatedAcrossStages() {
	_, err := Check(testPolicy, Request{
		Signatures: signedAt(SignatureEmission, SignatureWork),
		Current:    current(),
		Proposed: Record{
			"emitter": Record{"company": Record{"name": "ACME 2"}},
			"waste":   Record{"code": "17 06 05*", "familyCode": "2"},
			"worker":  Record{"work": Record{"hasEmitterPaperSignature": true}},
			"transporter": Record{"transport": Record{
				"plates": []any{"XY-987-ZZ"},
			}},
		},
	})

	s.ElementsMatch([]string{
		"emitterCompanyName",
		"wasteCode",
		"wasteFamilyCode",
		"workerWorkHasEmitterPaperSignature",
	}, s.sealedFields(err))
}

func (s *CheckSuite) TestSkippedStagesAreResolvedByLaterSignature() {
	// Private individual emitter: emission and work never signed.
	doc := signedAt(SignatureTransport)

	_, err := Check(testPolicy, Request{
		Signatures: doc,
		Current:    current(),
		Proposed: Record{
			"waste":  Record{"code": "17 06 05*"},
			"worker": Record{"work": Record{"hasEmitterPaperSignature": true}},
		},
	})
	s.ElementsMatch([]string{"wasteCode", "workerWorkHasEmitterPaperSignature"}, s.sealedFields(err))

	changes, err := Check(testPolicy, Request{
		Signatures: doc,
		Current:    current(),
		Proposed:   Record{"destination": Record{"reception": Record{"weight": 2.4}}},
	})
	s.Require().NoError(err)
	s.Equal([]string{"destinationReceptionWeight"}, changes.Fields)
}

func (s *CheckSuite) TestRepostingSameValuesProducesNoViolation() {
	changes, err := Check(testPolicy, Request{
		Signatures: signedAt(SignatureEmission, SignatureWork, SignatureTransport, SignatureOperation),
		Current:    current(),
		Proposed:   current(),
	})

	s.Require().NoError(err)
	s.True(changes.Empty())
}

func (s *CheckSuite) TestReopenedStageIsSkipped() {
	changes, err := Check(testPolicy, Request{
		Signatures: signedAt(SignatureEmission),
		Current:    current(),
		Proposed:   Record{"emitter": Record{"company": Record{"name": "ACME 2"}}},
		Bypass:     Bypass{Reopened: []SignatureType{SignatureEmission}},
	})

	s.Require().NoError(err)
	s.True(changes.Has("emitterCompanyName"))
}

func (s *CheckSuite) TestExemptFieldIsSkipped() {
	_, err := Check(testPolicy, Request{
		Signatures: signedAt(SignatureEmission),
		Current:    current(),
		Proposed: Record{
			"emitter": Record{"company": Record{"name": "ACME 2"}},
			"waste":   Record{"code": "17 06 05*"},
		},
		Bypass: Bypass{Fields: []string{"emitterCompanyName"}},
	})

	s.Equal([]string{"wasteCode"}, s.sealedFields(err))
}

func (s *CheckSuite) TestUngovernedFieldIsSealedFromFirstStage() {
	_, err := Check(testPolicy, Request{
		Signatures: signedAt(SignatureEmission),
		Current:    current(),
		Proposed:   Record{"unknown": "value"},
	})

	s.Equal([]string{"unknown"}, s.sealedFields(err))
}

func (s *CheckSuite) TestSealsAreAppended() {
	reassign := func(changed []string) []Violation {
		return []Violation{
			{Field: "transporters", Message: "Le transporteur n°1 a déjà signé"},
			{Field: "transporters", Message: "Le transporteur n°1 a déjà signé"},
		}
	}

	_, err := Check(testPolicy, Request{
		Signatures: signedAt(SignatureEmission),
		Current:    current(),
		Proposed:   Record{"waste": Record{"code": "17 06 05*"}},
		Seals:      []Seal{reassign},
	})

	s.Equal([]string{"wasteCode", "transporters"}, s.sealedFields(err))
	sfe, _ := AsSealedFields(err)
	s.Len(sfe.Violations, 2)
}

func (s *CheckSuite) TestSealedFields() {
	s.Empty(SealedFields(testPolicy, signedAt(), Bypass{}))

	s.Equal([]testField{fieldEmitterCompanyName, fieldWasteCode},
		SealedFields(testPolicy, signedAt(SignatureEmission), Bypass{}))

	s.Equal([]testField{fieldTransporterPlates, fieldWasteFamilyCode, fieldWorkerWorkHasPaper},
		SealedFields(testPolicy, signedAt(SignatureEmission, SignatureWork, SignatureTransport),
			Bypass{Reopened: []SignatureType{SignatureEmission}}))

	s.Equal([]testField{fieldEmitterCompanyName},
		SealedFields(testPolicy, signedAt(SignatureEmission), Bypass{Fields: []string{"wasteCode"}}))
}
