package matherr

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Pattern is a localizable message template. The English text doubles as the
// catalog key; untranslated patterns print as English.
type Pattern string

const (
	DimensionMismatch    Pattern = "dimension mismatch %d != %d"
	UndefinedBarycenter  Pattern = "barycenter is undefined for a region of size %v"
	NotStrictlyPositive  Pattern = "%v is smaller than, or equal to, the minimum (0)"
	TooFewVertices       Pattern = "polygon needs at least %d vertices, got %d"
	NonConvexPolygon     Pattern = "polygon is not convex at vertex %d"
	NoDistanceField      Pattern = "no distance field for a region of size %v"
	UnknownLogLevel      Pattern = "unknown logging level %q"
	EvaluationFailed     Pattern = "evaluation failed: %v"
	EvaluationPanic      Pattern = "panic during evaluation: %s"
	EvaluationSuperseded Pattern = "evaluation superseded by newer request"
	EvaluationTimeout    Pattern = "evaluation timed out after %s"
	ExpectedRegion       Pattern = "expression produced %s, expected a region"
)

var translations = map[language.Tag]map[Pattern]string{
	language.French: {
		DimensionMismatch:   "dimensions incompatibles %d != %d",
		UndefinedBarycenter: "barycentre indéfini pour une région de taille %v",
		NotStrictlyPositive: "%v n'est pas strictement plus grand que le minimum (0)",
		TooFewVertices:      "un polygone nécessite au moins %d sommets, %d fournis",
		NonConvexPolygon:    "le polygone n'est pas convexe au sommet %d",
		NoDistanceField:     "pas de champ de distance pour une région de taille %v",
		EvaluationFailed:    "échec de l'évaluation : %v",
		EvaluationTimeout:   "délai d'évaluation dépassé après %s",
	},
}

func init() {
	for tag, msgs := range translations {
		for p, msg := range msgs {
			if err := message.SetString(tag, string(p), msg); err != nil {
				panic(fmt.Sprintf("matherr: catalog entry %q: %v", p, err))
			}
		}
	}
}
