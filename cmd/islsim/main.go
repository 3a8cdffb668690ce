// islsim computes the link budget and bit error rate of a free-space optical
// inter-satellite link and renders the transmit/received power and BER/SNR charts.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
