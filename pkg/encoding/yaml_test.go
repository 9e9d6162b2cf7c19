package encoding

import (
	"os"
	"testing"
)

const (
	// testMessageYAMLString is the YAML-encoded form of the YAML test data.
	testMessageYAMLString = `
name: "George"
age: 67
`
)

// TestLoadAndUnmarshalYAML tests that loading and unmarshaling YAML data
// succeeds.
func TestLoadAndUnmarshalYAML(t *testing.T) {
	// Write the test YAML to a temporary file and defer its cleanup.
	file, err := os.CreateTemp("", "treediff_encoding")
	if err != nil {
		t.Fatal("unable to create temporary file:", err)
	} else if _, err = file.Write([]byte(testMessageYAMLString)); err != nil {
		t.Fatal("unable to write data to temporary file:", err)
	} else if err = file.Close(); err != nil {
		t.Fatal("unable to close temporary file:", err)
	}
	defer os.Remove(file.Name())

	// Attempt to load and unmarshal.
	value := &testMessage{}
	if err := LoadAndUnmarshalYAML(file.Name(), value); err != nil {
		t.Fatal("loadAndUnmarshal failed:", err)
	}

	// Verify test values.
	if value.Name != testMessageName {
		t.Error("test message name mismatch:", value.Name, "!=", testMessageName)
	}
	if value.Age != testMessageAge {
		t.Error("test message age mismatch:", value.Age, "!=", testMessageAge)
	}
}

// TestLoadAndUnmarshalYAMLUnknownField tests that strict YAML decoding
// rejects unknown fields.
func TestLoadAndUnmarshalYAMLUnknownField(t *testing.T) {
	// Write the test YAML to a temporary file and defer its cleanup.
	file, err := os.CreateTemp("", "treediff_encoding")
	if err != nil {
		t.Fatal("unable to create temporary file:", err)
	} else if _, err = file.Write([]byte("name: x\nbogus: y\n")); err != nil {
		t.Fatal("unable to write data to temporary file:", err)
	} else if err = file.Close(); err != nil {
		t.Fatal("unable to close temporary file:", err)
	}
	defer os.Remove(file.Name())

	// Attempt to load and unmarshal.
	if err := LoadAndUnmarshalYAML(file.Name(), &testMessage{}); err == nil {
		t.Error("strict decoding accepted unknown field")
	}
}
