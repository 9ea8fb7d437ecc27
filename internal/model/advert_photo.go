package model

import "time"

// AdvertPhoto is one image attached to an advert.  Checksum is the
// content digest and is unique across the whole system so the same
// image ingested twice is stored once.  At most one photo per advert
// carries IsMain; the repository clears the previous main photo in
// the same transaction that sets a new one.
//
// Fields:
//  ID        – primary key identifier.
//  AdvertID  – owning advert.
//  Path      – storage path of the image file.
//  Checksum  – unique content digest (hex SHA-256).
//  Enabled   – photo participates in packages and rendering.
//  IsMain    – photo is the advert's cover image.
//  CreatedAt – upload timestamp.
type AdvertPhoto struct {
	ID        uint64    // advert_photos.id
	AdvertID  uint64    // advert_photos.advert_id
	Path      string    // advert_photos.path
	Checksum  string    // advert_photos.checksum
	Enabled   bool      // advert_photos.enabled
	IsMain    bool      // advert_photos.is_main
	CreatedAt time.Time // advert_photos.created_at
}

// AdvertLock is the exclusive "in work" claim of one user on one
// advert.  The unique key on AdvertID makes acquisition a single
// atomic check-and-set: of two concurrent attempts exactly one
// insert wins, the other observes a duplicate-key conflict.
//
// Fields:
//  ID        – primary key identifier.
//  AdvertID  – locked advert (unique).
//  UserID    – user holding the editing claim.
//  CreatedAt – when the claim was taken.
type AdvertLock struct {
	ID        uint64    // advert_locks.id
	AdvertID  uint64    // advert_locks.advert_id
	UserID    uint64    // advert_locks.user_id
	CreatedAt time.Time // advert_locks.created_at
}
