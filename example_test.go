package fhirconv_test

import (
	"fmt"

	fhirconv "github.com/okubos/fhirconv"
	"github.com/okubos/fhirconv/schema"
)

func ExampleConvertJSON() {
	registryDoc := []byte(`
Observation:
  - name: status
    type: code
  - name: valueQuantity
    type: Quantity
Quantity:
  - name: value
    type: decimal
  - name: unit
    type: string
`)
	record := []byte(`<Observation>
  <status value="final"/>
  <valueQuantity>
    <value value="185.0500"/>
    <unit value="lbs"/>
  </valueQuantity>
</Observation>`)

	reg, err := schema.LoadYAML(registryDoc)
	if err != nil {
		fmt.Println(err)
		return
	}
	node, err := fhirconv.ParseXMLBytes(record)
	if err != nil {
		fmt.Println(err)
		return
	}
	out, err := fhirconv.ConvertJSON(node, reg)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(string(out))
	// Output: {"resourceType":"Observation","status":"final","valueQuantity":{"value":185.0500,"unit":"lbs"}}
}
