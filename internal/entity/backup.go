package entity

import "time"

// BackupVersion is the schema tag written into every export. Imports do not
// negotiate on it; only the presence of the three collections is checked.
const BackupVersion = "1.2.5"

// DefaultNFSLink is the NFS-e issuance portal used when no link was ever
// configured and when a restored backup carries none.
const DefaultNFSLink = "https://www.nfse.gov.br/EmissorNacional/Login?ReturnUrl=%2fEmissorNacional"

// Backup is the interchange document emitted by export and accepted by
// restore.
type Backup struct {
	Users     []Account      `json:"users"`
	Clients   []Client       `json:"clients"`
	Services  []ServiceOrder `json:"services"`
	NFSLink   string         `json:"nfsLink"`
	Version   string         `json:"version"`
	Timestamp time.Time      `json:"timestamp"`
}
