// Package oadr3client provides the primary entry point for constructing an
// OpenADR 3 VTN client that implements the oadr3.Client interface.
//
// It layers the authenticated HTTP transport and the OAuth2 client credentials
// exchange on top of the resource interfaces and types defined in the oadr3
// package. Most applications import oadr3client to build a client, then use the
// returned oadr3.Client to reach the collection clients: Programs(), Events(),
// Reports(), Vens() and Subscriptions().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/oadr3/pkg/oadr3"
//	  "github.com/fivetwenty-io/oadr3/pkg/oadr3client"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  config, err := oadr3.NewConfig("https://vtn.example.com", "client-id", "client-secret",
//	    oadr3.WithScope("read_all"))
//	  if err != nil { log.Fatal(err) }
//
//	  cli, err := oadr3client.New(config)
//	  if err != nil { log.Fatal(err) }
//	  defer cli.Close()
//
//	  resp, err := cli.Programs().List(ctx, &oadr3.ProgramSearch{
//	    SearchParams: oadr3.SearchParams{Limit: oadr3.Int(10)},
//	  })
//	  if err != nil { log.Fatal(err) } // validation, authentication or transport failure
//
//	  if resp.IsError() {
//	    log.Printf("VTN returned %d: %s", resp.Status, resp.Problem.Title)
//	    return
//	  }
//
//	  for _, program := range *resp.Response {
//	    log.Println(program.ProgramName)
//	  }
//	}
//
// # Errors
//
// Failures that prevent a request from completing are returned as errors:
// *oadr3.ValidationError, *oadr3.AuthenticationError, *oadr3.RequestError and
// oadr3.ErrClientClosed. Responses the VTN answered with a problem status are
// not errors; they come back as an APIResponse with Problem set.
//
// # Helpers
//
// NewWithClientCredentials builds the configuration and the client in one
// call. NewWithTokenManager accepts any oadr3.TokenManager for tokens obtained
// out of band.
package oadr3client
