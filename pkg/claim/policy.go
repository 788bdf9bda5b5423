package claim

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/helmcode/claimsafe/pkg/model"
)

// MaxPolicyBytes is the largest policy document accepted for upload.
const MaxPolicyBytes = 20 << 20

var pdfMagic = []byte("%PDF-")

// LoadPolicyPDF reads a policy document and checks that it is a PDF.
func LoadPolicyPDF(path string) (name string, data []byte, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, eris.Wrapf(err, "claim: stat policy %s", path)
	}
	if info.IsDir() {
		return "", nil, &model.ValidationError{Field: "policy file", Message: path + " is a directory"}
	}
	if info.Size() > MaxPolicyBytes {
		return "", nil, &model.ValidationError{Field: "policy file", Message: "larger than 20 MiB"}
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return "", nil, eris.Wrapf(err, "claim: read policy %s", path)
	}
	name = filepath.Base(path)
	if err := CheckPDF(name, data); err != nil {
		return "", nil, err
	}
	return name, data, nil
}

// CheckPDF validates the name and leading bytes of a policy document.
func CheckPDF(name string, data []byte) error {
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return &model.ValidationError{Field: "policy file", Message: "must have a .pdf extension"}
	}
	if !bytes.HasPrefix(data, pdfMagic) {
		return &model.ValidationError{Field: "policy file", Message: "is not a PDF document"}
	}
	return nil
}
