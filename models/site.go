package models

// Site represents a physical location where contracted work is performed
type Site struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}

// ProjectRef represents a procurement project reference (POR) that groups contracts
type ProjectRef struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	SiteID string `json:"siteId" yaml:"site_id"`
}
