// Package discovery locates the radio player process on the local
// network via multicast DNS.
//
// The player advertises itself under the "_lcdradio._tcp" service type.
// Discovery browses for that service, collects answering hosts, and
// returns dialable host:port candidates. It is used when no player
// address is configured.
//
// # Usage Example
//
//	scanner := discovery.NewScanner()
//	player, err := scanner.First(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("dialing", player.Address())
package discovery
