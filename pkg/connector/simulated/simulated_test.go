package simulated_test

import (
	"crypto/sha256"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/silicontrust/element-command/pkg/connector"
	"github.com/silicontrust/element-command/pkg/connector/simulated"
	"github.com/silicontrust/element-command/pkg/protocol"
)

var _ = Describe("Element", func() {
	var (
		device *simulated.Element
		conn   connector.Connector
	)

	BeforeEach(func() {
		device = simulated.New()
		conn = device.Connect()
		DeferCleanup(conn.Close)
	})

	Describe("symmetric key classes", func() {
		It("round-trips under both classes", func() {
			for _, class := range []connector.KeyClass{connector.KeyClassOneWay, connector.KeyClassShared} {
				blob, err := conn.EncryptAuth([]byte("secret"), class)
				Expect(err).NotTo(HaveOccurred())
				plaintext, err := conn.DecryptVerify(blob, class)
				Expect(err).NotTo(HaveOccurred())
				Expect(plaintext).To(Equal([]byte("secret")))
			}
		})

		It("keeps the two classes mutually opaque", func() {
			blob, err := conn.EncryptAuth([]byte("secret"), connector.KeyClassShared)
			Expect(err).NotTo(HaveOccurred())
			_, err = conn.DecryptVerify(blob, connector.KeyClassOneWay)
			Expect(err).To(MatchError(connector.ErrAuthFail))
		})

		It("produces a fresh nonce per encryption", func() {
			a, err := conn.EncryptAuth([]byte("same input"), connector.KeyClassOneWay)
			Expect(err).NotTo(HaveOccurred())
			b, err := conn.EncryptAuth([]byte("same input"), connector.KeyClassOneWay)
			Expect(err).NotTo(HaveOccurred())
			Expect(a).NotTo(Equal(b))
		})

		It("shares objects between elements holding the same shared key", func() {
			peer := simulated.New()
			Expect(peer.SetSharedKey(device.SharedKey())).To(Succeed())
			peerConn := peer.Connect()
			DeferCleanup(peerConn.Close)

			blob, err := conn.EncryptAuth([]byte("for the peer"), connector.KeyClassShared)
			Expect(err).NotTo(HaveOccurred())
			plaintext, err := peerConn.DecryptVerify(blob, connector.KeyClassShared)
			Expect(err).NotTo(HaveOccurred())
			Expect(plaintext).To(Equal([]byte("for the peer")))

			// One-way objects stay local even with the shared key in common.
			blob, err = conn.EncryptAuth([]byte("local only"), connector.KeyClassOneWay)
			Expect(err).NotTo(HaveOccurred())
			_, err = peerConn.DecryptVerify(blob, connector.KeyClassOneWay)
			Expect(err).To(MatchError(connector.ErrAuthFail))
		})
	})

	Describe("signing slots", func() {
		It("signs and verifies per slot", func() {
			digest := sha256.Sum256([]byte("slot test"))
			sig, err := conn.Sign(digest[:], 0)
			Expect(err).NotTo(HaveOccurred())

			ok, err := conn.Verify(digest[:], 0, sig)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())

			ok, err = conn.Verify(digest[:], 1, sig)
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeFalse())
		})

		It("rejects out-of-range slots", func() {
			digest := sha256.Sum256([]byte("slot test"))
			_, err := conn.Sign(digest[:], simulated.MaxSlot+1)
			Expect(err).To(HaveOccurred())
		})

		It("keeps slot keys stable across connections", func() {
			point, err := conn.ExportPublicKey(4)
			Expect(err).NotTo(HaveOccurred())
			Expect(point).To(HaveLen(65))
			Expect(point[0]).To(Equal(byte(0x04)))

			other := device.Connect()
			DeferCleanup(other.Close)
			again, err := other.ExportPublicKey(4)
			Expect(err).NotTo(HaveOccurred())
			Expect(again).To(Equal(point))
		})
	})

	Describe("perimeter channels", func() {
		BeforeEach(func() {
			var now uint32 = 5000
			device.SetClock(func() uint32 { now++; return now })
		})

		It("notifies listeners only when the notify action is set", func() {
			Expect(conn.SetChannelAction(0, connector.ActionNotify)).To(Succeed())
			device.TriggerPerimeter(1)
			Consistently(conn.Events()).ShouldNot(Receive())

			device.TriggerPerimeter(0)
			var event connector.Event
			Eventually(conn.Events()).Should(Receive(&event))
			Expect(event.Class).To(Equal(connector.EventPerimeter))
			Expect(event.Channel).To(Equal(0))
			Expect(event.Timestamp).NotTo(BeZero())
		})

		It("destroys key material on a self-destruct channel", func() {
			Expect(conn.SetChannelAction(0, connector.ActionSelfDestruct)).To(Succeed())
			blob, err := conn.EncryptAuth([]byte("doomed"), connector.KeyClassOneWay)
			Expect(err).NotTo(HaveOccurred())

			device.TriggerPerimeter(0)

			_, err = conn.DecryptVerify(blob, connector.KeyClassOneWay)
			Expect(err).To(HaveOccurred())
			digest := sha256.Sum256([]byte("doomed"))
			_, err = conn.Sign(digest[:], 0)
			Expect(err).To(HaveOccurred())
		})

		It("rejects unknown channels", func() {
			Expect(conn.SetChannelAction(simulated.NumChannels, connector.ActionNotify)).NotTo(Succeed())
			Expect(conn.SetChannelAction(-1, connector.ActionNotify)).NotTo(Succeed())
		})
	})

	Describe("tap events", func() {
		It("delivers taps to every connection", func() {
			second := device.Connect()
			DeferCleanup(second.Close)

			device.TriggerTap(connector.AxisY, protocol.TapNegative)

			for _, c := range []connector.Connector{conn, second} {
				var event connector.Event
				Eventually(c.Events()).Should(Receive(&event))
				Expect(event.Class).To(Equal(connector.EventTap))
			}

			axes, err := conn.ReadAccelerometer()
			Expect(err).NotTo(HaveOccurred())
			Expect(axes[connector.AxisY].TapDirection).To(Equal(protocol.TapNegative))
			Expect(axes[connector.AxisX].TapDirection).To(Equal(protocol.TapNone))
		})
	})

	Describe("connection lifecycle", func() {
		It("closes the notification channel on Close", func() {
			c := device.Connect()
			c.Close()
			Eventually(c.Events()).Should(BeClosed())
			c.Close()
		})

		It("keeps other connections alive", func() {
			second := device.Connect()
			second.Close()
			blob, err := conn.EncryptAuth([]byte("still here"), connector.KeyClassOneWay)
			Expect(err).NotTo(HaveOccurred())
			plaintext, err := conn.DecryptVerify(blob, connector.KeyClassOneWay)
			Expect(err).NotTo(HaveOccurred())
			Expect(plaintext).To(Equal([]byte("still here")))
		})
	})
})
