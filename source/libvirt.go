package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/shibukawa/kcmdline"
)

// ReadLibvirtXML extracts <domain><os><cmdline> from a libvirt domain
// definition. The entry is named after <domain><name> when present.
func ReadLibvirtXML(r io.Reader) (Entry, error) {
	doc := etree.NewDocument()

	if _, err := doc.ReadFrom(r); err != nil {
		return Entry{}, fmt.Errorf("failed to parse domain XML: %w", err)
	}

	domain := doc.SelectElement("domain")
	if domain == nil {
		return Entry{}, fmt.Errorf("%w: missing <domain> element", kcmdline.ErrNoCmdline)
	}

	cmdline := domain.FindElement("./os/cmdline")
	if cmdline == nil {
		return Entry{}, fmt.Errorf("%w: missing <os><cmdline> element", kcmdline.ErrNoCmdline)
	}

	var name string
	if elem := domain.SelectElement("name"); elem != nil {
		name = strings.TrimSpace(elem.Text())
	}

	return Entry{
		Name:    name,
		Cmdline: strings.TrimSpace(cmdline.Text()),
	}, nil
}
