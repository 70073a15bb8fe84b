package cpu

import (
	"fmt"

	"github.com/klauspost/cpuid/v2"
	"golang.org/x/sys/cpu"
)

var supported = cpu.X86.HasAES && cpu.X86.HasPCLMULQDQ

// Supported reports whether AES-NI and PCLMULQDQ are both available.
// It is false on non-x86 platforms.
func Supported() bool {
	return supported
}

// Info is a snapshot of processor details relevant to the cipher paths.
type Info struct {
	Brand        string
	Vendor       string
	LogicalCores int
	AESNI        bool
	CLMUL        bool
	Accelerated  bool
}

// Describe returns the processor details as seen by cpuid.
func Describe() Info {
	return Info{
		Brand:        cpuid.CPU.BrandName,
		Vendor:       cpuid.CPU.VendorString,
		LogicalCores: cpuid.CPU.LogicalCores,
		AESNI:        cpuid.CPU.Supports(cpuid.AESNI),
		CLMUL:        cpuid.CPU.Supports(cpuid.CLMUL),
		Accelerated:  supported,
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (%s, %d logical cores) aesni=%t clmul=%t accelerated=%t",
		i.Brand, i.Vendor, i.LogicalCores, i.AESNI, i.CLMUL, i.Accelerated)
}
