package loader_test

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/spimdf/emu"
	"github.com/sarchlab/spimdf/insts"
	"github.com/sarchlab/spimdf/loader"
)

func TestLoader(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Loader Suite")
}

func addiLine(rs, rt uint8, imm int) string {
	// 111000 rs(5) rt(5) imm(16, two's complement)
	bits := func(v uint64, n int) string {
		out := make([]byte, n)
		for i := 0; i < n; i++ {
			if (v>>uint(n-1-i))&1 == 1 {
				out[i] = '1'
			} else {
				out[i] = '0'
			}
		}
		return string(out)
	}
	return "111000" + bits(uint64(rs), 5) + bits(uint64(rt), 5) + bits(uint64(uint16(int16(imm))), 16)
}

func breakLine() string {
	return "010101" + strings.Repeat("0", 26)
}

var _ = Describe("Load", func() {
	It("loads instructions up to and including BREAK, then data words", func() {
		mem := emu.NewMemory()
		text := strings.Join([]string{
			addiLine(0, 1, 10),
			breakLine(),
			addiLine(0, 0, 99), // reused only as a bit pattern for a data word
		}, "\n") + "\n"

		res, err := loaderLoad(text, mem)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Instructions).To(Equal(2))
		Expect(res.DataWords).To(Equal(1))

		in, ok := mem.Instruction(256)
		Expect(ok).To(BeTrue())
		Expect(in.Op).To(Equal(insts.ADDI))
	})
})

var _ = Describe("WriteDisassembly", func() {
	It("writes File not found for a missing program", func() {
		mem := emu.NewMemory()
		var buf bytes.Buffer
		err := loader.WriteDisassembly(&buf, "/nonexistent/path/program.txt", mem)
		Expect(err).To(HaveOccurred())
		Expect(buf.String()).To(Equal("File not found"))
	})
})

// loaderLoad writes text to a temp file and loads it through
// loader.Load, removing the file afterward.
func loaderLoad(text string, mem *emu.Memory) (loader.Result, error) {
	f := writeTemp(text)
	defer removeTemp(f)
	return loader.Load(f, mem)
}
