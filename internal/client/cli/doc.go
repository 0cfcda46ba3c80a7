// Package cli implements filemetactl, the operator command line for the
// filemeta services.
//
// Commands
//
//	key                           print a freshly generated upload key
//	quota <owner>                 print the owner's quota
//	ls <owner> [folder] [-d]      list a folder (the owner's root by default); -d lists folders only
//	stat <id> [--deleted]         print one file node
//	cancel-upload <uploadID>      cancel a pending upload and release its reservation
//	token [subject]               print a service token
//
// The service secret is taken from FILEMETA_SECRET_KEY or prompted for
// without echo. Output is a table on a terminal and JSON otherwise.
package cli
