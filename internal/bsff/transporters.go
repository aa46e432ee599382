package bsff

import (
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"bordereau/internal/bsff/models"
	"bordereau/internal/edition"
)

// transporterSeal locks every leg whose TRANSPORT is signed: it can no longer
// be removed, replaced by another transporter or edited.
func transporterSeal(doc *models.Bsff, input models.Input) edition.Seal {
	return func(changed []string) []edition.Violation {
		if !slices.Contains(changed, string(FieldTransporters)) {
			return nil
		}
		var acc []edition.Violation
		for i, leg := range doc.Transporters {
			if leg.Signature == nil {
				continue
			}
			n := i + 1
			if i >= len(input.Transporters) || input.Transporters[i].ID != leg.ID {
				acc = append(acc, edition.Violation{
					Field:   string(FieldTransporters),
					Message: fmt.Sprintf("Le transporteur n°%d a déjà signé le BSFF, il ne peut pas être supprimé ou modifié", n),
				})
				continue
			}
			diff := edition.Diff(leg.Transporter.Record(), input.Transporters[i].Record())
			for _, path := range edition.Flatten(diff) {
				acc = append(acc, edition.Violation{
					Field:   string(FieldTransporters),
					Message: fmt.Sprintf("%s n°%d a été verrouillé via signature et ne peut pas être modifié.", describeLeg(path), n),
				})
			}
		}
		return acc
	}
}

func describeLeg(path string) string {
	r, size := utf8.DecodeRuneInString(path)
	key := "transporter" + string(unicode.ToUpper(r)) + path[size:]
	name, ok := transporterFields[key]
	if !ok {
		return "Le champ " + key
	}
	r, size = utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
