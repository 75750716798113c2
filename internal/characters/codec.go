package characters

import (
	"github.com/greathall/greathall/internal/docstore"
	"github.com/greathall/greathall/internal/sheet"
)

// DecodeProfile converts a public document snapshot into a profile.
func DecodeProfile(snap docstore.Snapshot) (sheet.PublicProfile, error) {
	var profile sheet.PublicProfile
	if err := docstore.Decode(snap.Data, &profile); err != nil {
		return sheet.PublicProfile{}, err
	}
	return profile, nil
}

// DecodeSheet converts a private document snapshot into a sheet.
func DecodeSheet(snap docstore.Snapshot) (sheet.PrivateSheet, error) {
	var priv sheet.PrivateSheet
	if err := docstore.Decode(snap.Data, &priv); err != nil {
		return sheet.PrivateSheet{}, err
	}
	return priv, nil
}

// EncodeProfile converts a profile into document data.
func EncodeProfile(profile sheet.PublicProfile) (map[string]any, error) {
	return docstore.Encode(profile)
}

// EncodeSheet converts a private sheet into document data.
func EncodeSheet(priv sheet.PrivateSheet) (map[string]any, error) {
	return docstore.Encode(priv)
}
