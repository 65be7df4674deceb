package runtime

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"

	"github.com/Vistara-Labs/terminator-dancer/types"
)

// traceInstruction renders debug-level detail about an instruction about to
// be dispatched: the program id (highlighted) and a dump of its raw
// instruction data. The runtime builds it for every instruction and hands it
// to its logger at debug level, so it only appears when debug is enabled.
//
// Grounded on cielu-go-solana/pkg/encodtext/format's use of spew.Sdump for
// parameter dumps and fatih/color for highlighting identifiers.
func traceInstruction(programID types.Pubkey, data []byte) string {
	highlighted := color.New(color.FgCyan, color.Bold).Sprint(programID.String())
	return "program=" + highlighted + " data=" + spew.Sdump(data)
}
