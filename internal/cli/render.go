package cli

import (
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/iudanet/secretsguard/internal/store"
)

// renderMatches prints records with their IDs, either as a table or as
// field-per-line blocks (--no-table). Only fields a record actually carries
// appear in block mode; table cells for absent fields stay empty.
func (c *Cli) renderMatches(fieldNames []string, matches []store.Match) {
	if c.cfg.NoTable {
		c.renderBlocks(fieldNames, matches)
		return
	}
	c.renderTable(fieldNames, matches)
}

func (c *Cli) renderTable(fieldNames []string, matches []store.Match) {
	table := tablewriter.NewWriter(c.io)
	table.SetHeader(append([]string{"ID"}, fieldNames...))
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, m := range matches {
		row := make([]string, 0, len(fieldNames)+1)
		row = append(row, strconv.Itoa(m.ID))
		for _, name := range fieldNames {
			value, _ := m.Secret.Get(name)
			row = append(row, value)
		}
		table.Append(row)
	}
	table.Render()
}

func (c *Cli) renderBlocks(fieldNames []string, matches []store.Match) {
	for _, m := range matches {
		c.io.Printf("ID: %d\n", m.ID)
		for _, name := range fieldNames {
			if value, ok := m.Secret.Get(name); ok {
				c.io.Printf("%s: %s\n", name, value)
			}
		}
		c.io.Println(strings.Repeat("-", 20))
	}
}

// storeView assigns display IDs to the store's sorted records.
func storeView(st *store.Store) []store.Match {
	sorted := st.SortedSecrets()
	matches := make([]store.Match, len(sorted))
	for i, s := range sorted {
		matches[i] = store.Match{ID: i, Secret: s}
	}
	return matches
}
