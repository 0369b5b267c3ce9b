package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fooddesk/internal/config"
	"fooddesk/internal/listview"
	"fooddesk/internal/model"
	"fooddesk/internal/resource"
)

// Every resource screen of the admin console is the same four commands bound
// to a different resource spec, so one implementation serves them all.

type listCmd struct {
	name string
	spec *resource.Spec
}

func (c listCmd) Name() string { return c.name }
func (c listCmd) Description() string {
	return "List " + c.spec.Plural + " with client-side search and paging"
}
func (c listCmd) Usage() string {
	if c.spec.Nested {
		return c.name + " [--search <q>] [--page <n>] [--page-size <n>] <restaurantId>"
	}
	return c.name + " [--search <q>] [--page <n>] [--page-size <n>]"
}
func (c listCmd) Protected() bool { return true }

func (c listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet(c.name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	search := fs.String("search", "", "substring filter over "+strings.Join(c.spec.MatchFields, "/"))
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", cfg.PageSize, "records per page")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	parentID, rest, err := splitPositionals(c.spec, fs.Args())
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return ErrUsage
	}

	items, err := newOrchestrator(cfg).List(ctx, c.spec, parentID)
	if err != nil {
		return err
	}

	view := listview.DeriveView(items, *search, c.spec.MatchFields, listview.Page{Page: *page, Size: *pageSize})
	renderTable(c.spec, view, *page, *pageSize)
	return nil
}

type createCmd struct {
	name string
	spec *resource.Spec
}

func (c createCmd) Name() string { return c.name }
func (c createCmd) Description() string {
	return "Create a " + c.spec.Name + " from flags and the stored draft"
}
func (c createCmd) Usage() string {
	if c.spec.Nested {
		return c.name + " [--<field> <value> ...] <restaurantId>"
	}
	return c.name + " [--<field> <value> ...]"
}
func (c createCmd) Protected() bool { return true }

func (c createCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	sub, parentID, rest, err := buildSubmission(c.spec, cfg, args)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return ErrUsage
	}

	res, err := newOrchestrator(cfg).Create(ctx, c.spec, parentID, sub)
	if err != nil {
		return err
	}
	clearDraft(cfg, c.spec, parentID)
	fmt.Fprintln(Out, res.Message)
	fmt.Fprintf(Out, "→ fdadmin %s\n", res.Destination)
	return nil
}

type updateCmd struct {
	name string
	spec *resource.Spec
}

func (c updateCmd) Name() string { return c.name }
func (c updateCmd) Description() string {
	return "Update a " + c.spec.Name + " (fetched values + draft + flags)"
}
func (c updateCmd) Usage() string {
	if c.spec.Nested {
		return c.name + " [--<field> <value> ...] <restaurantId> <id>"
	}
	return c.name + " [--<field> <value> ...] <id>"
}
func (c updateCmd) Protected() bool { return true }

func (c updateCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	o := newOrchestrator(cfg)

	sub, parentID, rest, err := buildSubmission(c.spec, cfg, args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return ErrUsage
	}
	id := rest[0]

	// the current record pre-populates everything the draft and flags don't touch
	rec, err := o.View(ctx, c.spec, id)
	if err != nil {
		return err
	}
	base := make(map[string]string, len(c.spec.Fields))
	for _, f := range c.spec.Fields {
		if f.Secret {
			continue
		}
		base[f.Name] = rec.Str(f.Name)
	}
	for name, v := range sub.Values {
		if v != "" {
			base[name] = v
		}
	}
	sub.Values = base

	res, err := o.Update(ctx, c.spec, parentID, id, sub)
	if err != nil {
		return err
	}
	clearDraft(cfg, c.spec, parentID)
	fmt.Fprintln(Out, res.Message)
	fmt.Fprintf(Out, "→ fdadmin %s\n", res.Destination)
	return nil
}

type deleteCmd struct {
	name string
	spec *resource.Spec
}

func (c deleteCmd) Name() string { return c.name }
func (c deleteCmd) Description() string {
	return "Delete a " + c.spec.Name + " after confirmation"
}
func (c deleteCmd) Usage() string {
	if c.spec.Nested {
		return c.name + " [--yes] <restaurantId> <id>"
	}
	return c.name + " [--yes] <id>"
}
func (c deleteCmd) Protected() bool { return true }

func (c deleteCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet(c.name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	parentID, rest, err := splitPositionals(c.spec, fs.Args())
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return ErrUsage
	}
	id := rest[0]

	confirm := Confirm
	if *yes {
		confirm = func(string) (bool, error) { return true, nil }
	}
	o := resource.NewOrchestrator(newClient(cfg), confirm)

	// deletion operates on the local list snapshot: fetch first, then remove
	// the record only after the backend confirms
	items, err := o.List(ctx, c.spec, parentID)
	if err != nil {
		return err
	}
	kept, res, err := o.Delete(ctx, c.spec, id, items)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, res.Message)
	fmt.Fprintf(Out, "Remaining %s: %d\n", c.spec.Plural, len(kept))
	return nil
}

// buildSubmission parses per-field flags, overlays them on the stored draft
// and returns the submission plus the parsed positional context.
func buildSubmission(spec *resource.Spec, cfg *config.Config, args []string) (resource.Submission, string, []string, error) {
	fs := flag.NewFlagSet(spec.Name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	flagValues := make(map[string]*string, len(spec.Fields))
	confirmValues := make(map[string]*string)
	for _, f := range spec.Fields {
		flagValues[f.Name] = fs.String(f.Name, "", f.Name)
		if f.Secret {
			confirmValues[f.Name] = fs.String("confirm-"+f.Name, "", "confirmation for --"+f.Name)
		}
	}
	var imagePath string
	if spec.Multipart {
		fs.StringVar(&imagePath, "image", "", "local image file to attach")
	}
	if err := fs.Parse(args); err != nil {
		return resource.Submission{}, "", nil, ErrUsage
	}
	parentID, rest, err := splitPositionals(spec, fs.Args())
	if err != nil {
		return resource.Submission{}, "", nil, err
	}

	drafts, done, err := openDrafts(cfg)
	if err != nil {
		return resource.Submission{}, "", nil, err
	}
	defer done()
	values, err := drafts.Values(spec.Name, parentID)
	if err != nil {
		return resource.Submission{}, "", nil, err
	}
	d, err := drafts.Get(spec.Name, parentID)
	if err != nil {
		return resource.Submission{}, "", nil, err
	}
	if d != nil && imagePath == "" {
		imagePath = d.ImagePath
	}

	// explicitly set flags win over the draft
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for name, v := range flagValues {
		if set[name] {
			values[name] = *v
		}
	}
	confirms := map[string]string{}
	for name, v := range confirmValues {
		if set["confirm-"+name] {
			confirms[name] = *v
		}
	}

	return resource.Submission{Values: values, ConfirmValues: confirms, ImagePath: imagePath}, parentID, rest, nil
}

// splitPositionals consumes the leading restaurant id positional on nested
// resources and passes the remaining positionals through.
func splitPositionals(spec *resource.Spec, rest []string) (string, []string, error) {
	if !spec.Nested {
		return "", rest, nil
	}
	if len(rest) < 1 {
		return "", nil, ErrUsage
	}
	return rest[0], rest[1:], nil
}

func clearDraft(cfg *config.Config, spec *resource.Spec, parentID string) {
	drafts, done, err := openDrafts(cfg)
	if err != nil {
		return
	}
	defer done()
	_ = drafts.Clear(spec.Name, parentID)
}

// renderTable prints the derived view the way the admin tables render it:
// numbering continues across pages and absent fields show as N/A.
func renderTable(spec *resource.Spec, view listview.View, page, pageSize int) {
	w := tabwriter.NewWriter(Out, 2, 4, 2, ' ', 0)
	headers := append([]string{"NO", "ID"}, spec.Columns...)
	fmt.Fprintln(w, strings.Join(upper(headers), "\t"))
	for i, rec := range view.PageItems {
		row := []string{
			fmt.Sprintf("%d", (page-1)*pageSize+i+1),
			rec.ID(),
		}
		for _, col := range spec.Columns {
			row = append(row, cell(rec, col))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
	if view.Total == 0 {
		fmt.Fprintf(Out, "No %s found.\n", spec.Plural)
		return
	}
	fmt.Fprintf(Out, "Showing %d of %d %s (page %d)\n", len(view.PageItems), view.Total, spec.Plural, page)
}

func cell(rec model.Record, col string) string {
	if v := rec.Str(col); v != "" {
		return v
	}
	return "N/A"
}

func upper(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToUpper(s)
	}
	return out
}

func init() {
	RegisterCmd(listCmd{name: "restaurants", spec: resource.Restaurant})
	RegisterCmd(createCmd{name: "restaurant-create", spec: resource.Restaurant})
	RegisterCmd(updateCmd{name: "restaurant-update", spec: resource.Restaurant})
	RegisterCmd(deleteCmd{name: "restaurant-delete", spec: resource.Restaurant})

	RegisterCmd(listCmd{name: "users", spec: resource.User})
	RegisterCmd(createCmd{name: "user-create", spec: resource.User})
	RegisterCmd(updateCmd{name: "user-update", spec: resource.User})
	RegisterCmd(deleteCmd{name: "user-delete", spec: resource.User})

	RegisterCmd(listCmd{name: "partners", spec: resource.DeliveryPartner})
	RegisterCmd(createCmd{name: "partner-create", spec: resource.DeliveryPartner})
	RegisterCmd(updateCmd{name: "partner-update", spec: resource.DeliveryPartner})
	RegisterCmd(deleteCmd{name: "partner-delete", spec: resource.DeliveryPartner})

	RegisterCmd(listCmd{name: "menu", spec: resource.MenuItem})
	RegisterCmd(createCmd{name: "menu-create", spec: resource.MenuItem})
	RegisterCmd(updateCmd{name: "menu-update", spec: resource.MenuItem})
	RegisterCmd(deleteCmd{name: "menu-delete", spec: resource.MenuItem})
}
