// Package blog holds the blog post model, its validation rules, the stores
// that persist posts (MongoDB, bolt, in-memory), and the HTTP handlers for
// the /api/blogs resource.
//
// Every store exposes the record key as Post.ID. MongoDB uses the hex form
// of the document ObjectID; the bolt and memory stores issue ULIDs.
package blog
