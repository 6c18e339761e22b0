// Package kgclient provides the primary entry point for constructing an
// EBRAINS Knowledge Graph client that implements the kg.Client interface.
//
// It derives the versioned base URL from a host, lets the token providers
// discover their endpoints, and wires the transport. Applications build a
// client here and then use the resource clients exposed by kg.Client.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//	  "os"
//
//	  "github.com/fivetwenty-io/kg-client/pkg/kg"
//	  "github.com/fivetwenty-io/kg-client/pkg/kgclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // With a token you already have:
//	  cli, err := kgclient.NewWithToken(ctx, "core.kg.ebrains.eu", os.Getenv("KG_TOKEN"))
//	  if err != nil { log.Fatal(err) }
//
//	  // As a service account:
//	  cli, err = kgclient.NewWithClientCredentials(ctx, "core.kg.ebrains.eu", "my-client", "secret")
//
//	  // A user acting through a service account:
//	  cfg := &kg.Config{
//	    Host:          "core.kg.ebrains.eu",
//	    TokenProvider: kgclient.StaticToken(os.Getenv("KG_TOKEN")),
//	  }
//	  cli, err = kgclient.New(ctx, kgclient.WithClientCredentials(cfg, "my-client", "secret"))
//	  if err != nil { log.Fatal(err) }
//
//	  me, err := cli.Users().MyInfo(ctx)
//	  if err != nil { log.Fatal(err) }
//	  _ = me
//	}
//
// # Local development
//
// Hosts starting with "localhost" are reached over plain http, e.g.
// kgclient.BaseURL("localhost:8000") is http://localhost:8000/v3-beta/.
package kgclient
