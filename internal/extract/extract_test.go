package extract_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/phoenix-ai/apiprobe/internal/extract"
)

var _ = Describe("Values", func() {
	var parsed any

	BeforeEach(func() {
		body := `[{"id":1,"name":"Leanne Graham","address":{"city":"Gwenborough"}},{"id":2,"name":"Ervin Howell"}]`
		Expect(json.Unmarshal([]byte(body), &parsed)).To(Succeed())
	})

	It("should return nil when no extractors are configured", func() {
		Expect(extract.Values(parsed, nil)).To(BeNil())
	})

	It("should extract simple paths", func() {
		values := extract.Values(parsed, map[string]string{"first_name": "$[0].name"})
		Expect(values).To(HaveKeyWithValue("first_name", "Leanne Graham"))
	})

	It("should extract nested paths", func() {
		values := extract.Values(parsed, map[string]string{"city": "$[0].address.city"})
		Expect(values).To(HaveKeyWithValue("city", "Gwenborough"))
	})

	It("should extract numeric values", func() {
		values := extract.Values(parsed, map[string]string{"second_id": "$[1].id"})
		Expect(values).To(HaveKeyWithValue("second_id", float64(2)))
	})

	It("should record an error string for a missing path instead of failing", func() {
		values := extract.Values(parsed, map[string]string{"missing": "$[0].nope"})
		Expect(values).To(HaveKey("missing"))
		Expect(values["missing"]).To(ContainSubstring("Error extracting"))
	})

	It("should record an error string when the body never parsed", func() {
		values := extract.Values(nil, map[string]string{"name": "$[0].name"})
		Expect(values["name"]).To(ContainSubstring("Error extracting"))
	})
})
