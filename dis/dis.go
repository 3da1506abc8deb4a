// Package dis turns object streams back into assembly listings.
package dis

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/simplymiply/miply/isa"
	"github.com/simplymiply/miply/object"
)

// Disassembler reads object streams into listings.
type Disassembler struct {
	Verbose bool // If set, verbosely logs each decoded word.
}

// Entry is one word of the object stream. Err is set when the word
// was malformed or does not decode; such entries render as comments.
type Entry struct {
	Addr int
	Word isa.Word
	Inst isa.Instruction
	Err  error
}

// Listing is a disassembled program. Labels holds the names invented
// for in-program target addresses.
type Listing struct {
	Entries []Entry
	Labels  map[int]string
}

// Read disassembles an object stream. Malformed and undecodable
// words become error entries rather than failing the read; only a
// stream read failure is returned.
func (dis *Disassembler) Read(input io.Reader) (listing *Listing, err error) {
	var entries []Entry

	or := object.NewReader(input)
	for {
		addr, word, rerr := or.Next()
		if rerr == io.EOF {
			break
		}

		if rerr != nil {
			if !errors.As(rerr, new(*object.ErrBadWord)) {
				err = rerr
				return
			}
			if dis.Verbose {
				log.Printf("%v\n", rerr)
			}
			entries = append(entries, Entry{Addr: addr, Err: rerr})
			continue
		}

		entry := Entry{Addr: addr, Word: word}
		entry.Inst, entry.Err = isa.Decode(word)
		if dis.Verbose && entry.Err == nil {
			log.Printf("%v: %v\n", addr, entry.Inst.Render())
		}
		entries = append(entries, entry)
	}

	listing = &Listing{
		Entries: entries,
		Labels:  make(map[int]string),
	}
	listing.link()

	return
}

// link invents a label for every target address that falls inside
// the program, so the rendered listing reassembles to the same words.
func (listing *Listing) link() {
	for n := range listing.Entries {
		entry := &listing.Entries[n]
		if entry.Err != nil || !entry.Inst.Op.Targets() {
			continue
		}

		addr := entry.Inst.Addr
		if addr < 0 || addr >= len(listing.Entries) {
			continue
		}

		name, ok := listing.Labels[addr]
		if !ok {
			name = fmt.Sprintf("L%d", addr)
			listing.Labels[addr] = name
		}
		entry.Inst.Sym = name
	}
}

// outside reports whether the entry's target was left numeric and
// points past the program.
func (listing *Listing) outside(entry *Entry) bool {
	if entry.Err != nil || !entry.Inst.Op.Targets() || entry.Inst.Sym != "" {
		return false
	}

	return entry.Inst.Addr >= len(listing.Entries)
}

// Render writes the listing as assembly text, labels in the first
// column and instructions indented.
func (listing *Listing) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for n := range listing.Entries {
		entry := &listing.Entries[n]

		if name, ok := listing.Labels[entry.Addr]; ok {
			fmt.Fprintf(bw, "%v:\n", name)
		}

		switch {
		case entry.Err != nil:
			fmt.Fprintf(bw, "    # error: %v\n", entry.Err)
		case listing.outside(entry):
			fmt.Fprintf(bw, "    %v # target outside program\n", entry.Inst.Render())
		default:
			fmt.Fprintf(bw, "    %v\n", entry.Inst.Render())
		}
	}

	return bw.Flush()
}
