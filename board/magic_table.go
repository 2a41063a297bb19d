package board

// Precomputed magic multipliers, bishops at 9 index bits and rooks at 12. Print a fresh set with `snail -magics`.
var (
	rookMagicNumbers = [TotalCells]uint64{
		0x2080004000201880,
		0x0240044020001001,
		0x0820000800100004,
		0x2071080020100040,
		0x0140814004000100,
		0x0800410102900AA0,
		0x0600110400485200,
		0x0200042508804402,
		0x8820020820041000,
		0x0820181010010088,
		0x0808901420201140,
		0x0000280002809200,
		0x0120050004A20800,
		0x8000460814000100,
		0x0602400800804100,
		0x029020108C004120,
		0x0004040200400010,
		0x1000A02204001012,
		0x2038200600200101,
		0x480040042180C800,
		0xA388150002040100,
		0x0300008002200414,
		0x6102004100008040,
		0x0200009002032040,
		0x0080201080004000,
		0x0000400180200084,
		0x08C0064100132002,
		0x0200A94200800800,
		0x9000011100810008,
		0x0200080210410880,
		0x0452119450046240,
		0x00284C8010022100,
		0x0808041020022000,
		0x3910024803B00011,
		0x0810200010050100,
		0x4040020180128880,
		0x110E000132008800,
		0x000003000C100180,
		0x0018084200800890,
		0x1100C50020081100,
		0x8000104000208000,
		0x0140001900110040,
		0x9212902101100200,
		0x4008420844801000,
		0x1010020900050001,
		0x0004000200404080,
		0x0E000100C2140008,
		0x4800048002412018,
		0x02050910A0408200,
		0x1810002200180458,
		0x202201E420002882,
		0x22002004001200A8,
		0x0481228800021008,
		0x14330004002040D8,
		0x0100008621000040,
		0x0041800143041020,
		0x0102102283004202,
		0xA600810088400197,
		0x0001021020000815,
		0x01200A0040102002,
		0x000C010005080011,
		0x1601200A04008831,
		0x8040040042002091,
		0x1012010084005022,
	}
	bishopMagicNumbers = [TotalCells]uint64{
		0x0802100408801021,
		0x0081080010420902,
		0x8009040020060300,
		0x00438281100010A0,
		0x0088806800022000,
		0x000018009802E061,
		0x0802281118008120,
		0x0084022104014000,
		0x218100E202040118,
		0xC50011009401A102,
		0x0204582054002001,
		0x0001005005400140,
		0x00000C25810A0680,
		0x15010018A41000C8,
		0x0088041402420882,
		0x0000400808001600,
		0x3206008050610A08,
		0x00340003614020A0,
		0x8000840810290A12,
		0x0020480200800200,
		0x0000200400200008,
		0x0020200088004082,
		0x0400050140202110,
		0x0840040901809022,
		0x0024406AA0C10404,
		0x01104B0801048050,
		0x0400220010001040,
		0x2001004034004200,
		0x0010040000802104,
		0x0102222810220180,
		0x00458440004C8182,
		0x002004C0400481A0,
		0x0008460990004404,
		0x04002029FC011800,
		0x2042002440118040,
		0x8041010900080040,
		0x4004080200002008,
		0x4040830402081002,
		0x2000480260440704,
		0xB004484040000210,
		0x0802205042000100,
		0x0008220200706042,
		0x004C0A0040200404,
		0x0800006401002020,
		0x0408041082001820,
		0x6000848100081E00,
		0x028B042081000401,
		0x0008000880720600,
		0xC001410880200001,
		0x826414080D200000,
		0x2000800240248004,
		0x1024C14828081000,
		0x0880209030401090,
		0x0204025009A09002,
		0x08020201AA001008,
		0x0015480580040642,
		0x0212010401448048,
		0x0200004030882008,
		0x0000002152008040,
		0x3400220000140080,
		0x0000000084A10010,
		0x04010C2088022028,
		0x00040145020A0544,
		0x3000448200820014,
	}
)
