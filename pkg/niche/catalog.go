// Package niche holds the built-in catalog of business niches and the
// folder layout each one scaffolds.
package niche

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("niche not found")

// Definition is one selectable niche. Directories are relative,
// slash-separated and created in order.
type Definition struct {
	Code        string   `yaml:"code"`
	Name        string   `yaml:"name"`
	Directories []string `yaml:"directories"`
}

var builtInNiches = map[string]Definition{
	"1": {
		Code: "1",
		Name: "E-Commerce",
		Directories: []string{
			"1_ecom_inventory/product_catalogs",
			"1_ecom_inventory/supplier_info",
			"2_ecom_marketing/social_media_assets",
			"2_ecom_marketing/email_campaigns",
			"3_ecom_orders/fulfillment_logs",
			"3_ecom_orders/returns_data",
			"4_ecom_support/customer_service_scripts",
			"5_ecom_analytics/reports",
		},
	},
	"2": {
		Code: "2",
		Name: "Real Estate",
		Directories: []string{
			"1_re_crm/lead_lists",
			"1_re_crm/follow_up_scripts",
			"2_re_listings/marketing_assets",
			"2_re_listings/mls_data",
			"3_re_transactions/contracts_docs",
			"3_re_transactions/inspection_reports",
			"3_re_transactions/closing_checklists",
			"4_re_admin/agent_templates",
		},
	},
	"3": {
		Code: "3",
		Name: "Bookkeeper",
		Directories: []string{
			"1_bk_monthly_close/bank_statements",
			"1_bk_monthly_close/receipts_source_data",
			"2_bk_compliance/tax_docs",
			"3_bk_ar_ap/accounts_receivable",
			"3_bk_ar_ap/accounts_payable",
			"4_bk_reports/monthly_pnl_bs",
			"5_bk_admin/client_onboarding",
		},
	},
	"4": {
		Code: "4",
		Name: "Travel Agent Booking",
		Directories: []string{
			"1_ta_intake/client_preferences",
			"2_ta_research/flight_options",
			"2_ta_research/hotel_options",
			"3_ta_itinerary/drafts",
			"3_ta_itinerary/final_confirmations",
			"4_ta_vendors/supplier_contacts",
			"5_ta_marketing/promo_materials",
		},
	},
}

// Catalog is a read-only view over a set of niche definitions.
type Catalog struct {
	niches map[string]Definition
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	return &Catalog{niches: builtInNiches}
}

// List returns every niche ordered by code.
func (c *Catalog) List() []Definition {
	codes := make([]string, 0, len(c.niches))
	for code := range c.niches {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	list := make([]Definition, 0, len(codes))
	for _, code := range codes {
		list = append(list, clone(c.niches[code]))
	}
	return list
}

// Resolve looks a niche up by its exact selector code.
func (c *Catalog) Resolve(code string) (Definition, error) {
	def, ok := c.niches[code]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %q", ErrNotFound, code)
	}
	return clone(def), nil
}

// MarshalYAML renders the catalog as an ordered list.
func (c *Catalog) MarshalYAML() (interface{}, error) {
	return struct {
		Niches []Definition `yaml:"niches"`
	}{Niches: c.List()}, nil
}

// YAML is a convenience wrapper used by the catalog command.
func (c *Catalog) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func clone(d Definition) Definition {
	dirs := make([]string, len(d.Directories))
	copy(dirs, d.Directories)
	d.Directories = dirs
	return d
}
