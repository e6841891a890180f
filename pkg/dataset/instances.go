package dataset

import (
	"github.com/sjwhitworth/golearn/base"
)

// LoadInstances parses an ARFF file with golearn's own reader, for callers
// that want to hand the data straight to golearn models. The last attribute
// becomes the class attribute.
func LoadInstances(path string) (*base.DenseInstances, error) {
	return base.ParseDenseARFFToInstances(path)
}
