package seqio

// Record is one sequencing read. Qual is empty for FASTA input.
type Record struct {
	ID   string
	Desc string
	Seq  string
	Qual string
}

func (r Record) header() string {
	if r.Desc == "" {
		return r.ID
	}
	return r.ID + " " + r.Desc
}
